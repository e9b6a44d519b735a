package extraction

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ShortDateLayout is the canonical short-date form: zero-padded month and
// day, two-digit year. The year truncation carries no century logic.
const ShortDateLayout = "01/02/06"

var dateShape = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

// ExtractDate finds the first date-shaped substring in rawText, validates it
// as a real calendar date and normalizes it to ShortDateLayout. When nothing
// matches, or the match is not a valid date, the canonical form of now is
// returned with defaulted=true (and isToday trivially true).
func ExtractDate(rawText string, now time.Time) (date string, defaulted, isToday bool) {
	today := now.Format(ShortDateLayout)

	match := dateShape.FindString(rawText)
	if match == "" {
		return today, true, true
	}
	t, err := parseLooseDate(match)
	if err != nil {
		return today, true, true
	}
	normalized := t.Format(ShortDateLayout)
	return normalized, false, normalized == today
}

// parseLooseDate accepts month/day/year with "/" or "-" separators, unpadded
// components and either a two- or four-digit year. Calendar-invalid inputs
// (month 13, day 30 in February) are errors, never rolled over.
func parseLooseDate(s string) (time.Time, error) {
	s = strings.ReplaceAll(s, "-", "/")
	for _, layout := range []string{"1/2/2006", "1/2/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a calendar date: %q", s)
}
