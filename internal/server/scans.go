package server

import (
	"encoding/json"
	"net/http"

	"github.com/SebJones333/Receipt-Scanner/internal/common"
	"github.com/SebJones333/Receipt-Scanner/internal/extraction"
)

type scanRequest struct {
	OCRText string `json:"ocr_text"`
}

type scanResponse struct {
	JobID       string            `json:"job_id"`
	NeedsReview bool              `json:"needs_review"`
	Confidence  float32           `json:"confidence"`
	Result      extraction.Result `json:"result"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()
	var req scanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(s.maxBytes))).Decode(&req); err != nil {
		s.writeError(w, common.NewAppError("SCAN_BAD_BODY", "request body must be JSON", common.ErrInvalidInput))
		return
	}

	v := common.NewValidator()
	v.Field("ocr_text", req.OCRText, common.Required, common.MaxLength(s.maxBytes))
	if err := common.ValidateAndReturnError(v); err != nil {
		s.writeError(w, err)
		return
	}

	job, res, err := s.pipeline.Run(r.Context(), req.OCRText, s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, scanResponse{
		JobID:       job.ID.String(),
		NeedsReview: job.NeedsReview,
		Confidence:  job.Confidence,
		Result:      res,
	})
}
