package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SebJones333/Receipt-Scanner/constants"
	"github.com/SebJones333/Receipt-Scanner/internal/entity"
)

// ScanJobRepository tracks the lifecycle of scan jobs.
type ScanJobRepository interface {
	Start(ctx context.Context, ocrText string, confidence float32) (*entity.ScanJob, error)
	FinishSuccess(ctx context.Context, id uuid.UUID, extractedJSON []byte, needsReview bool) error
	FinishFailure(ctx context.Context, id uuid.UUID, message string) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ScanJob, error)
}

type scanJobRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewScanJobRepository(pool *pgxpool.Pool, logger *slog.Logger) ScanJobRepository {
	return &scanJobRepository{pool: pool, logger: logger}
}

func (r *scanJobRepository) Start(ctx context.Context, ocrText string, confidence float32) (*entity.ScanJob, error) {
	job := &entity.ScanJob{
		ID:         uuid.New(),
		Status:     string(constants.JobStatusRunning),
		StartedAt:  time.Now().UTC(),
		OCRText:    ocrText,
		Confidence: confidence,
	}
	const q = `
		INSERT INTO scan_jobs (id, status, started_at, ocr_text, confidence)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.pool.Exec(ctx, q, job.ID, job.Status, job.StartedAt, job.OCRText, job.Confidence); err != nil {
		r.logger.Error("failed to start scan job", "error", err)
		return nil, err
	}
	return job, nil
}

func (r *scanJobRepository) FinishSuccess(ctx context.Context, id uuid.UUID, extractedJSON []byte, needsReview bool) error {
	const q = `
		UPDATE scan_jobs
		SET status = $2, finished_at = $3, extracted_json = $4, needs_review = $5
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, string(constants.JobStatusExtractOK), time.Now().UTC(), extractedJSON, needsReview)
	if err != nil {
		r.logger.Error("failed to finish scan job", "job_id", id, "error", err)
	}
	return err
}

func (r *scanJobRepository) FinishFailure(ctx context.Context, id uuid.UUID, message string) error {
	const q = `
		UPDATE scan_jobs
		SET status = $2, finished_at = $3, error_message = $4
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, string(constants.JobStatusFailed), time.Now().UTC(), message)
	if err != nil {
		r.logger.Error("failed to mark scan job failed", "job_id", id, "error", err)
	}
	return err
}

func (r *scanJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScanJob, error) {
	const q = `
		SELECT id, status, started_at, finished_at, error_message, ocr_text, confidence, needs_review, extracted_json
		FROM scan_jobs WHERE id = $1`
	var job entity.ScanJob
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&job.ID, &job.Status, &job.StartedAt, &job.FinishedAt, &job.ErrorMessage,
		&job.OCRText, &job.Confidence, &job.NeedsReview, &job.ExtractedJSON,
	)
	if err != nil {
		r.logger.Error("failed to load scan job", "job_id", id, "error", err)
		return nil, err
	}
	return &job, nil
}
