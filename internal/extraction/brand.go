package extraction

import "strings"

// BrandOther is the sentinel returned when no fingerprint scores above zero.
const BrandOther = "Other"

// fuzzyThreshold tolerates 1-2 character OCR errors on short anchor words.
const fuzzyThreshold = 0.70

// Fingerprint identifies one known merchant. InstantTerms confirm the brand
// outright; StrongAnchors are worth 2 points (substring or fuzzy token match);
// WeakAnchors are worth 1 point (substring only).
type Fingerprint struct {
	Name          string
	InstantTerms  []string
	StrongAnchors []string
	WeakAnchors   []string
}

// fingerprints is process-wide configuration. Declaration order is part of the
// matching contract: instant-term short-circuit and score tie-breaking both
// resolve to the earliest entry.
var fingerprints = []Fingerprint{
	{
		Name:          "Meijer",
		InstantTerms:  []string{"MEIJER"},
		StrongAnchors: []string{"MPERKS", "26"},
		WeakAnchors:   []string{"1005 E 13 MILE", "MADISON HEIGHTS", "48071", "307-4900"},
	},
	{
		Name:          "Kroger",
		InstantTerms:  []string{"KROGER"},
		StrongAnchors: []string{"PLUS CUSTOMER", "FUEL POINTS", "LOW PRICES", "PLUS CARD"},
		WeakAnchors:   []string{"2200 E 12 MILE", "2483971520"},
	},
	{
		Name:          "Costco",
		InstantTerms:  []string{"COSTCO"},
		StrongAnchors: []string{"WHOLESALE", "MEMBER"},
		WeakAnchors:   []string{"393", "30550 STEPHENSON", "48071"},
	},
	{
		Name:          "Target",
		InstantTerms:  []string{"TARGET"},
		StrongAnchors: []string{"CIRCLE", "REDCARD"},
		WeakAnchors:   []string{"614-9792", "1301 COOLIDGE", "49084"},
	},
	{
		Name:          "Home Depot",
		InstantTerms:  []string{"HOME DEPOT", "DEPOT"},
		StrongAnchors: []string{"DOERS", "GET MORE DONE"},
		WeakAnchors:   []string{"1177 COOLIDGE", "48084", "816-8001"},
	},
	{
		Name:          "Trader Joes",
		InstantTerms:  []string{"TRADER JOES", "TRADERJOES"},
		StrongAnchors: []string{"JOE'S", "9:00AM", "9:00PM"},
		WeakAnchors:   []string{"27880 WOODWARD", "48067", "582-9002"},
	},
	{
		Name:          "Ace",
		InstantTerms:  []string{"ACE HARDWARE", "GREAT LAKES ACE"},
		StrongAnchors: []string{"HARDWARE"},
		WeakAnchors:   []string{"18086", "541-4904", "515 E. 4TH"},
	},
}

// Brands returns the fixed merchant names in declaration order, plus the
// "Other" sentinel.
func Brands() []string {
	out := make([]string, 0, len(fingerprints)+1)
	for _, fp := range fingerprints {
		out = append(out, fp.Name)
	}
	return append(out, BrandOther)
}

// MatchBrand scores raw OCR text against the fingerprint table and returns
// the best brand name. The confidence flag is true only on an instant-term
// hit; scored matches are never confident.
func MatchBrand(rawText string) (string, bool) {
	upper := strings.ToUpper(rawText)
	words := strings.Fields(upper)

	best := BrandOther
	highest := 0

	for _, fp := range fingerprints {
		for _, term := range fp.InstantTerms {
			if strings.Contains(upper, term) {
				return fp.Name, true
			}
		}

		score := 0
		for _, anchor := range fp.StrongAnchors {
			if strings.Contains(upper, anchor) {
				score += 2
				continue
			}
			// A fuzzy hit is counted per token, so an anchor word that
			// recurs in the text is awarded more than once.
			for _, word := range words {
				if Similarity(word, anchor) >= fuzzyThreshold {
					score += 2
				}
			}
		}
		for _, term := range fp.WeakAnchors {
			if strings.Contains(upper, term) {
				score++
			}
		}

		if score > highest {
			highest = score
			best = fp.Name
		}
	}
	return best, false
}
