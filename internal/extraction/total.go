package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Source names the policy that produced a resolved total.
type Source string

const (
	SourceDuplicateFrequency Source = "duplicate-frequency"
	SourceScoredHeuristic    Source = "scored-heuristic"
	SourceNoneFound          Source = "none-found"
)

// Trailing monetary token: the last decimal-looking number on a line,
// tolerating "," as an OCR-misread decimal separator.
var trailingAmount = regexp.MustCompile(`(\d+[.,]\d{2})\D*$`)

var (
	savingsTerms = []string{"SAVINGS", "SAVED", "POINTS", "YOU", "COUPON", "DISCOUNT"}
	totalTerms   = []string{"BALANCE", "TOTAL", "DUE"}
	tenderTerms  = []string{"MASTERCARD", "VISA", "DEBIT", "TENDER", "BC AMT"}
)

// Candidate is one monetary line under consideration for the total.
type Candidate struct {
	Value decimal.Decimal
	Score int
	Line  int
}

// ResolveTotal scans receipt lines for trailing monetary tokens and resolves
// the most likely grand total. A value that appears on at least two lines
// wins outright (the largest such value); otherwise the highest-scoring
// candidate is taken, preferring lines nearer the end of the receipt.
func ResolveTotal(rawText string) (decimal.Decimal, Source) {
	lines := cleanLines(rawText)

	freq := make(map[string]int)
	values := make(map[string]decimal.Decimal)
	var candidates []Candidate

	for i, line := range lines {
		upper := strings.ToUpper(line)
		if containsAny(upper, savingsTerms) {
			// Discount/points amounts are never totals.
			continue
		}
		m := trailingAmount.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
		if err != nil {
			continue
		}

		key := value.StringFixed(2)
		freq[key]++
		values[key] = value

		score := 0
		if containsAny(upper, totalTerms) {
			score += 20
		}
		if containsAny(upper, tenderTerms) {
			score += 30
		}
		if float64(i) > float64(len(lines))*0.7 {
			score += 5
		}
		candidates = append(candidates, Candidate{Value: value, Score: score, Line: i})
	}

	// Consensus first: repeated values outrank any keyword score.
	var best decimal.Decimal
	found := false
	for key, n := range freq {
		if n < 2 {
			continue
		}
		if v := values[key]; !found || v.GreaterThan(best) {
			best = v
			found = true
		}
	}
	if found {
		return best, SourceDuplicateFrequency
	}

	if len(candidates) == 0 {
		return decimal.Zero, SourceNoneFound
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Line > candidates[j].Line
	})
	return candidates[0].Value, SourceScoredHeuristic
}

func cleanLines(rawText string) []string {
	raw := strings.Split(rawText, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if len(l) <= 1 {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
