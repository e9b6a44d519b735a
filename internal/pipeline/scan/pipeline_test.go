package scan

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebJones333/Receipt-Scanner/constants"
	"github.com/SebJones333/Receipt-Scanner/internal/entity"
	"github.com/SebJones333/Receipt-Scanner/internal/extraction"
)

type memJobs struct {
	jobs map[uuid.UUID]*entity.ScanJob
}

func newMemJobs() *memJobs {
	return &memJobs{jobs: make(map[uuid.UUID]*entity.ScanJob)}
}

func (m *memJobs) Start(_ context.Context, ocrText string, confidence float32) (*entity.ScanJob, error) {
	job := &entity.ScanJob{
		ID:         uuid.New(),
		Status:     string(constants.JobStatusRunning),
		StartedAt:  time.Now().UTC(),
		OCRText:    ocrText,
		Confidence: confidence,
	}
	m.jobs[job.ID] = job
	return job, nil
}

func (m *memJobs) FinishSuccess(_ context.Context, id uuid.UUID, extractedJSON []byte, needsReview bool) error {
	job := m.jobs[id]
	job.Status = string(constants.JobStatusExtractOK)
	job.ExtractedJSON = extractedJSON
	job.NeedsReview = needsReview
	now := time.Now().UTC()
	job.FinishedAt = &now
	return nil
}

func (m *memJobs) FinishFailure(_ context.Context, id uuid.UUID, message string) error {
	job := m.jobs[id]
	job.Status = string(constants.JobStatusFailed)
	job.ErrorMessage = &message
	now := time.Now().UTC()
	job.FinishedAt = &now
	return nil
}

func (m *memJobs) GetByID(_ context.Context, id uuid.UUID) (*entity.ScanJob, error) {
	return m.jobs[id], nil
}

const cleanReceipt = `KROGER
PLUS CUSTOMER 424242
2200 E 12 MILE
MILK 3.49
BREAD 2.99
EGGS LARGE DOZEN 4.19
TOTAL 45.00
03/01/2024 14:22
VISA 45.00`

func TestPipelineRun(t *testing.T) {
	jobs := newMemJobs()
	p := NewPipeline(nil, Config{}, jobs)
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	job, res, err := p.Run(context.Background(), cleanReceipt, now)
	require.NoError(t, err)

	assert.Equal(t, string(constants.JobStatusExtractOK), jobs.jobs[job.ID].Status)
	assert.Equal(t, "Kroger", res.Brand)
	assert.Equal(t, "45.00", res.TotalString())
	assert.False(t, job.NeedsReview)

	var stored extraction.Result
	require.NoError(t, json.Unmarshal(job.ExtractedJSON, &stored))
	assert.Equal(t, res.Brand, stored.Brand)
	assert.Equal(t, res.Date, stored.Date)
}

func TestPipelineFlagsReviewOnWeakSignal(t *testing.T) {
	jobs := newMemJobs()
	p := NewPipeline(nil, Config{}, jobs)
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	// No brand, no date, no total: everything defaulted.
	job, res, err := p.Run(context.Background(), "completely unrelated text here", now)
	require.NoError(t, err)

	assert.True(t, job.NeedsReview)
	assert.Equal(t, extraction.BrandOther, res.Brand)
	assert.Equal(t, extraction.SourceNoneFound, res.TotalSource)
}

func TestPipelineFailsOnBlankText(t *testing.T) {
	jobs := newMemJobs()
	p := NewPipeline(nil, Config{}, jobs)

	job, _, err := p.Run(context.Background(), "   \n  ", time.Now())
	require.Error(t, err)
	require.NotNil(t, job)
	assert.Equal(t, string(constants.JobStatusFailed), jobs.jobs[job.ID].Status)
	require.NotNil(t, jobs.jobs[job.ID].ErrorMessage)
}

func TestPipelineDefaultsMinConfidence(t *testing.T) {
	p := NewPipeline(nil, Config{}, newMemJobs())
	assert.InDelta(t, 0.60, p.Cfg.MinConfidence, 1e-6)
}
