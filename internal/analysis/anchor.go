// Package analysis turns located-by-text suggestion drafts into suggestions
// with offsets that honour the store's contract.
package analysis

import (
	"strings"

	"writeassist/internal/domain"
)

// contextRadius is how many runes of surrounding text go into Context.
const contextRadius = 30

// Draft is a suggestion before it has been placed in a text.
type Draft struct {
	Kind        domain.Kind `json:"type"`
	Category    string      `json:"category"`
	Original    string      `json:"original"`
	Replacement string      `json:"suggestion"`
	Explanation string      `json:"explanation"`
}

// Anchor places drafts in text and numbers them from firstID.
//
// Each draft's Original is searched from the end of the previous placement,
// then from the start of text. Drafts that cannot be found, have an empty
// Original, or would overlap an already placed suggestion are dropped, so the
// result never contains overlapping ranges.
func Anchor(text string, drafts []Draft, firstID int) []domain.Suggestion {
	runes := []rune(text)
	var placed []domain.Suggestion
	id := firstID
	from := 0
	for _, d := range drafts {
		if d.Original == "" {
			continue
		}
		needle := []rune(d.Original)
		start := indexRunes(runes, needle, from)
		if start < 0 {
			start = indexRunes(runes, needle, 0)
		}
		for start >= 0 && overlapsAny(placed, start, start+len(needle)) {
			start = indexRunes(runes, needle, start+1)
		}
		if start < 0 {
			continue
		}
		end := start + len(needle)
		kind := d.Kind
		if !kind.Valid() {
			kind = domain.KindGrammar
		}
		placed = append(placed, domain.Suggestion{
			ID:          id,
			Kind:        kind,
			Category:    d.Category,
			Original:    d.Original,
			Replacement: d.Replacement,
			Context:     snippet(runes, start, end),
			Explanation: d.Explanation,
			StartIndex:  start,
			EndIndex:    end,
		})
		id++
		from = end
	}
	return placed
}

func overlapsAny(placed []domain.Suggestion, start, end int) bool {
	for _, p := range placed {
		if start < p.EndIndex && p.StartIndex < end {
			return true
		}
	}
	return false
}

func indexRunes(haystack, needle []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func snippet(runes []rune, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(runes) {
		hi = len(runes)
	}
	s := strings.TrimSpace(string(runes[lo:hi]))
	return "..." + s + "..."
}
