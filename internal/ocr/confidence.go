package ocr

import "regexp"

var (
	reDate   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	reCurr   = regexp.MustCompile(`(?i)\b(usd|cad|total|balance|tender)\b|[$]`)
	reAmount = regexp.MustCompile(`\b\d+[.,]\d{2}\b`)
)

// Confidence is a naive heuristic score of how receipt-shaped a decoded text
// is. Date-ish, currency-ish and amount-ish artifacts each add a fixed boost.
func Confidence(txt string) float32 {
	score := float32(0.2) // base
	if reDate.MatchString(txt) {
		score += 0.2
	}
	if reCurr.MatchString(txt) {
		score += 0.15
	}
	if reAmount.MatchString(txt) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
