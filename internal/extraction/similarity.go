package extraction

import "strings"

// Similarity returns normalized edit-distance similarity in [0,1] between two
// tokens, case-insensitive. Two empty strings are treated as identical.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}
	return float64(longest-editDistance(ra, rb)) / float64(longest)
}

// editDistance is classic Levenshtein with unit costs, keeping only the
// previous DP row.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j-1]+cost, prev[j]+1, curr[j-1]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
