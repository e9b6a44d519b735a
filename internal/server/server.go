// Package server exposes the scan pipeline and receipt store over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/SebJones333/Receipt-Scanner/internal/common"
	"github.com/SebJones333/Receipt-Scanner/internal/export"
	"github.com/SebJones333/Receipt-Scanner/internal/pipeline/scan"
	"github.com/SebJones333/Receipt-Scanner/internal/repository"
)

// Server wires HTTP handlers to the scan pipeline, repositories and exporter.
type Server struct {
	logger   *slog.Logger
	pipeline *scan.Pipeline
	receipts repository.ReceiptRepository
	exporter *export.Service
	maxBytes int
	now      func() time.Time
}

func New(logger *slog.Logger, pipeline *scan.Pipeline, receipts repository.ReceiptRepository, exporter *export.Service, maxBytes int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	return &Server{
		logger:   logger,
		pipeline: pipeline,
		receipts: receipts,
		exporter: exporter,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/scans", s.handleScan).Methods(http.MethodPost)
	r.HandleFunc("/v1/receipts", s.handleCreateReceipt).Methods(http.MethodPost)
	r.HandleFunc("/v1/receipts", s.handleListReceipts).Methods(http.MethodGet)
	r.HandleFunc("/v1/receipts/export", s.handleExportReceipts).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
