// Package template implements vendor profile detection: a small set of
// keyword profiles biases extraction toward a known invoice convention
// (national tax-ID formats, mostly) before the generic rules run.
package template

import (
	"regexp"
	"strings"
)

// Profile is one vendor convention: keywords that must appear in the
// document, and optional per-field regex overrides (first capture group
// is the value).
type Profile struct {
	ID       string
	Name     string
	Keywords []string
	Fields   map[string]string
}

// profiles is the registration order, which doubles as the tie-break:
// on equal keyword scores the earlier profile wins. The catch-all
// generic profile is registered last so it only wins when nothing more
// specific matched.
var profiles = []Profile{
	{
		ID:       "generic-dk",
		Name:     "Generic (DK/CVR style)",
		Keywords: []string{"CVR", "Moms", "Danmark", "DK-"},
	},
	{
		ID:       "generic-de",
		Name:     "Generic (DE/GmbH style)",
		Keywords: []string{"GmbH", "MwSt", "Steuernummer", "DE"},
	},
	{
		ID:       "generic-uk",
		Name:     "Generic (UK/VAT style)",
		Keywords: []string{"VAT", "Limited", "Ltd", "GB"},
	},
	{
		ID:       "generic",
		Name:     "Generic",
		Keywords: []string{"invoice", "total", "amount"},
	},
}

// Detect scores every registered profile by case-insensitive keyword
// hits and returns the strict winner, or nil when no profile matched at
// all (generic mode).
func Detect(normalizedText string) *Profile {
	lower := strings.ToLower(normalizedText)

	var best *Profile
	bestScore := 0
	for i := range profiles {
		score := 0
		for _, kw := range profiles[i].Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		if best == nil || score > bestScore {
			best = &profiles[i]
			bestScore = score
		}
	}
	return best
}

// FieldOverride compiles the template's regex override for fieldName,
// or nil when the template has none (caller falls back to generic rules).
func FieldOverride(p *Profile, fieldName string) *regexp.Regexp {
	if p == nil || p.Fields == nil {
		return nil
	}
	expr, ok := p.Fields[fieldName]
	if !ok || expr == "" {
		return nil
	}
	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return nil
	}
	return re
}
