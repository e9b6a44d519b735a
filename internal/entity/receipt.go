package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt represents a verified purchase record for data transfer between layers.
type Receipt struct {
	ID          uuid.UUID       `json:"id"`
	Store       string          `json:"store"`
	TxDate      time.Time       `json:"tx_date"`
	Total       decimal.Decimal `json:"total"`
	TotalSource string          `json:"total_source,omitempty"`
	JobID       *uuid.UUID      `json:"job_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UploadRecord is the serialized shape a reviewed receipt travels in:
// three string fields, the total rendered with two fraction digits.
type UploadRecord struct {
	Store string `json:"store"`
	Date  string `json:"date"`
	Total string `json:"total"`
}
