// Package render splits a buffer into plain and annotated runs for display.
package render

import "writeassist/internal/domain"

// Span is a contiguous run of the buffer. Start and End are rune offsets,
// half-open. Annotated spans carry the id and kind of their suggestion.
type Span struct {
	Text         string      `json:"text"`
	Start        int         `json:"start"`
	End          int         `json:"end"`
	Annotated    bool        `json:"annotated"`
	SuggestionID int         `json:"suggestionId,omitempty"`
	Kind         domain.Kind `json:"kind,omitempty"`
}

// Render decomposes buffer into spans in document order. Concatenating the
// Text of the result always yields buffer.
//
// Suggestions are walked by StartIndex (ties by id) with a cursor that never
// moves backwards: the part of an annotation that lies behind the cursor is
// cut off, so a suggestion fully covered by an earlier one becomes a
// zero-length annotated span at the cursor and a partially overlapping one
// is clipped to start at the cursor. Zero-length plain spans are
// dropped; zero-length annotated spans are kept.
//
// A suggestion with offsets outside [0, len(buffer)] yields a
// *domain.RangeError and no spans.
func Render(buffer string, suggestions []domain.Suggestion) ([]Span, error) {
	runes := []rune(buffer)
	if len(suggestions) == 0 {
		return []Span{{Text: buffer, Start: 0, End: len(runes)}}, nil
	}
	for _, s := range suggestions {
		if err := domain.CheckRange(s, len(runes)); err != nil {
			return nil, err
		}
	}

	sorted := append([]domain.Suggestion(nil), suggestions...)
	domain.SortByStart(sorted)

	spans := make([]Span, 0, 2*len(sorted)+1)
	cursor := 0
	for _, s := range sorted {
		if s.StartIndex > cursor {
			spans = append(spans, plain(runes, cursor, s.StartIndex))
		}
		start := maxInt(s.StartIndex, cursor)
		end := maxInt(s.EndIndex, cursor)
		spans = append(spans, Span{
			Text:         string(runes[start:end]),
			Start:        start,
			End:          end,
			Annotated:    true,
			SuggestionID: s.ID,
			Kind:         s.Kind,
		})
		cursor = end
	}
	if cursor < len(runes) {
		spans = append(spans, plain(runes, cursor, len(runes)))
	}
	return spans, nil
}

// Text concatenates the text of spans.
func Text(spans []Span) string {
	n := 0
	for _, sp := range spans {
		n += len(sp.Text)
	}
	b := make([]byte, 0, n)
	for _, sp := range spans {
		b = append(b, sp.Text...)
	}
	return string(b)
}

func plain(runes []rune, start, end int) Span {
	return Span{Text: string(runes[start:end]), Start: start, End: end}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
