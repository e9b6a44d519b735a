package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBrand(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantBrand     string
		wantConfident bool
	}{
		{
			name:          "instant term short-circuits other anchors",
			text:          "COSTCO WHOLESALE MEMBER MPERKS REDCARD",
			wantBrand:     "Costco",
			wantConfident: true,
		},
		{
			name:          "instant term inside larger token",
			text:          "WELCOME TO TARGETSTORE 1301",
			wantBrand:     "Target",
			wantConfident: true,
		},
		{
			name:          "no fingerprint terms at all",
			text:          "LOREM IPSUM DOLOR SIT AMET",
			wantBrand:     BrandOther,
			wantConfident: false,
		},
		{
			name:          "fuzzy strong anchors without instant hit",
			text:          "WH0LESALE CLUB MEMBFR SINCE 2019",
			wantBrand:     "Costco",
			wantConfident: false,
		},
		{
			name:          "fuzzy multi-hit outscores exact single anchor",
			text:          "MEMBFR MEMBFR HARDWARE",
			wantBrand:     "Costco",
			wantConfident: false,
		},
		{
			name:          "score tie keeps the earlier fingerprint",
			text:          "MPERKS WHOLESALE",
			wantBrand:     "Meijer",
			wantConfident: false,
		},
		{
			name:          "weak anchors accumulate",
			text:          "MADISON HEIGHTS MI 48071 307-4900",
			wantBrand:     "Meijer",
			wantConfident: false,
		},
		{
			name:          "scored match is never confident",
			text:          "WHOLESALE MEMBER",
			wantBrand:     "Costco",
			wantConfident: false,
		},
		{
			name:          "empty text",
			text:          "",
			wantBrand:     BrandOther,
			wantConfident: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, confident := MatchBrand(tt.text)
			assert.Equal(t, tt.wantBrand, brand)
			assert.Equal(t, tt.wantConfident, confident)
		})
	}
}

func TestMatchBrandCaseInsensitive(t *testing.T) {
	brand, confident := MatchBrand("costco wholesale #393")
	assert.Equal(t, "Costco", brand)
	assert.True(t, confident)
}

func TestMatchBrandDeterministic(t *testing.T) {
	// The fingerprint table iterates in declaration order, so repeated calls
	// over identical text never flip between brands.
	const text = "MPERKS WHOLESALE REDCARD HARDWARE"
	first, _ := MatchBrand(text)
	for i := 0; i < 50; i++ {
		got, _ := MatchBrand(text)
		assert.Equal(t, first, got)
	}
}

func TestBrands(t *testing.T) {
	names := Brands()
	assert.Equal(t, []string{
		"Meijer", "Kroger", "Costco", "Target", "Home Depot", "Trader Joes", "Ace", BrandOther,
	}, names)
}
