package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SebJones333/Receipt-Scanner/internal/entity"
	"github.com/SebJones333/Receipt-Scanner/internal/extraction"
	"github.com/SebJones333/Receipt-Scanner/internal/ocr"
	"github.com/SebJones333/Receipt-Scanner/internal/repository"
)

// Config holds thresholds and behavior flags for the scan stage.
type Config struct {
	MinConfidence float32 // default 0.60
}

// Pipeline normalizes OCR text, runs the extraction engine and persists the
// job record. The verified receipt itself is written later, after human
// review, through the receipts endpoint.
type Pipeline struct {
	Logger *slog.Logger
	Cfg    Config
	Jobs   repository.ScanJobRepository
}

func NewPipeline(logger *slog.Logger, cfg Config, jobs repository.ScanJobRepository) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.60
	}
	return &Pipeline{Logger: logger, Cfg: cfg, Jobs: jobs}
}

// Run executes one scan over rawText.
// Effects: inserts a scan_jobs row, runs extraction and writes
// extracted_json plus needs_review on the job.
func (p *Pipeline) Run(ctx context.Context, rawText string, now time.Time) (*entity.ScanJob, extraction.Result, error) {
	text := ocr.Normalize(rawText)
	confidence := ocr.Confidence(text)

	job, err := p.Jobs.Start(ctx, text, confidence)
	if err != nil {
		return nil, extraction.Result{}, fmt.Errorf("start job: %w", err)
	}

	p.Logger.Info("scan.start",
		"job_id", job.ID, "ocr_bytes", len(text), "confidence", confidence,
	)

	res, err := extraction.Extract(text, now)
	if err != nil {
		_ = p.Jobs.FinishFailure(ctx, job.ID, err.Error())
		return job, extraction.Result{}, fmt.Errorf("extract fields: %w", err)
	}

	needsReview := res.Brand == extraction.BrandOther ||
		res.TotalSource == extraction.SourceNoneFound ||
		res.DateDefaulted ||
		confidence < p.Cfg.MinConfidence

	raw, err := json.Marshal(res)
	if err != nil {
		_ = p.Jobs.FinishFailure(ctx, job.ID, err.Error())
		return job, res, fmt.Errorf("encode result: %w", err)
	}
	if err := p.Jobs.FinishSuccess(ctx, job.ID, raw, needsReview); err != nil {
		return job, res, err
	}
	job.NeedsReview = needsReview
	job.ExtractedJSON = raw

	p.Logger.Info("scan.ok",
		"job_id", job.ID,
		"brand", res.Brand, "brand_confident", res.BrandConfident,
		"date", res.Date, "total", res.TotalString(),
		"total_source", res.TotalSource, "needs_review", needsReview,
	)
	return job, res, nil
}
