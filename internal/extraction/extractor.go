// Package extraction turns noisy OCR receipt text into a best-effort
// structured record: merchant brand, transaction date and total amount, plus
// the signal flags a reviewer needs to correct it cheaply. It never fails on
// valid input; absent signals degrade to documented defaults.
package extraction

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SebJones333/Receipt-Scanner/internal/common"
	"github.com/SebJones333/Receipt-Scanner/internal/entity"
)

// Result is the engine's output for one receipt.
type Result struct {
	Brand          string          `json:"brand"`
	BrandConfident bool            `json:"brand_confident"`
	Date           string          `json:"date"`
	DateDefaulted  bool            `json:"date_defaulted"`
	DateIsToday    bool            `json:"date_is_today"`
	Total          decimal.Decimal `json:"-"`
	TotalSource    Source          `json:"total_source"`
}

// TotalString renders the total with exactly two fraction digits.
func (r Result) TotalString() string {
	return r.Total.StringFixed(2)
}

// MarshalJSON renders the total as a two-fraction-digit string so the wire
// shape never loses the trailing zeros.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		alias
		Total string `json:"total"`
	}{alias(r), r.TotalString()})
}

// UploadRecord converts the result to the serialized shape consumed
// downstream after human review.
func (r Result) UploadRecord() entity.UploadRecord {
	return entity.UploadRecord{
		Store: r.Brand,
		Date:  r.Date,
		Total: r.TotalString(),
	}
}

// Extract runs brand matching, date extraction and total resolution over the
// raw OCR text and assembles the result. It is a pure function of
// (rawText, now); the only surfaced error is the rejection of blank input,
// which is a contract violation rather than an absence of signal.
func Extract(rawText string, now time.Time) (Result, error) {
	if strings.TrimSpace(rawText) == "" {
		return Result{}, common.NewAppError("EXTRACT_EMPTY_INPUT", "ocr text is empty", common.ErrInvalidInput)
	}

	brand, confident := MatchBrand(rawText)
	date, defaulted, isToday := ExtractDate(rawText, now)
	total, source := ResolveTotal(rawText)

	return Result{
		Brand:          brand,
		BrandConfident: confident,
		Date:           date,
		DateDefaulted:  defaulted,
		DateIsToday:    isToday,
		Total:          total,
		TotalSource:    source,
	}, nil
}
