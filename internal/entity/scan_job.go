package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScanJob tracks one pass of the extraction engine over a blob of OCR text.
type ScanJob struct {
	ID            uuid.UUID  `json:"id"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	OCRText       string     `json:"ocr_text,omitempty"`
	Confidence    float32    `json:"confidence"`
	NeedsReview   bool       `json:"needs_review"`
	ExtractedJSON []byte     `json:"extracted_json,omitempty"`
}
