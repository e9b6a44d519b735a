package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SebJones333/Receipt-Scanner/internal/common"
	"github.com/SebJones333/Receipt-Scanner/internal/entity"
	"github.com/SebJones333/Receipt-Scanner/internal/extraction"
	"github.com/SebJones333/Receipt-Scanner/internal/record"
)

func (s *Server) handleCreateReceipt(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.maxBytes)))
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_BAD_BODY", "failed to read request body", common.ErrInvalidInput))
		return
	}

	rec, err := record.Decode(body)
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", err.Error(), common.ErrInvalidInput))
		return
	}

	txDate, err := time.ParseInLocation(extraction.ShortDateLayout, rec.Date, time.UTC)
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", fmt.Sprintf("date %q is not a calendar date", rec.Date), common.ErrInvalidInput))
		return
	}
	total, err := decimal.NewFromString(rec.Total)
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", fmt.Sprintf("total %q is not a decimal", rec.Total), common.ErrInvalidInput))
		return
	}

	receipt := &entity.Receipt{
		Store:  rec.Store,
		TxDate: txDate,
		Total:  total,
	}
	if jobParam := strings.TrimSpace(r.URL.Query().Get("job_id")); jobParam != "" {
		jobID, err := uuid.Parse(jobParam)
		if err != nil {
			s.writeError(w, common.NewAppError("RECEIPT_INVALID", "job_id must be a UUID", common.ErrInvalidInput))
			return
		}
		receipt.JobID = &jobID
	}

	saved, err := s.receipts.Create(r.Context(), receipt)
	if err != nil {
		s.writeError(w, common.WrapError(err, "save receipt"))
		return
	}

	s.logger.Info("receipt.saved", "receipt_id", saved.ID, "store", saved.Store, "total", saved.Total.StringFixed(2))
	s.writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	fromDate, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", err.Error(), common.ErrInvalidInput))
		return
	}
	toDate, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", err.Error(), common.ErrInvalidInput))
		return
	}

	recs, err := s.receipts.List(r.Context(), fromDate, toDate)
	if err != nil {
		s.writeError(w, common.WrapError(err, "list receipts"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"receipts": recs})
}

func (s *Server) handleExportReceipts(w http.ResponseWriter, r *http.Request) {
	fromDate, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", err.Error(), common.ErrInvalidInput))
		return
	}
	toDate, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		s.writeError(w, common.NewAppError("RECEIPT_INVALID", err.Error(), common.ErrInvalidInput))
		return
	}

	data, err := s.exporter.ExportReceiptsXLSX(r.Context(), fromDate, toDate)
	if err != nil {
		s.writeError(w, common.WrapError(err, "export receipts"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="receipts.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write export", "error", err)
	}
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", v)
	}
	return &t, nil
}
