package domain

import (
	"fmt"
	"unicode/utf8"
)

// NotFoundError is returned when an operation names a suggestion id that is
// not live.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("suggestion %d not found", e.ID)
}

// RangeError reports a suggestion whose offsets are inconsistent with the
// buffer it is applied to.
type RangeError struct {
	ID     int
	Start  int
	End    int
	Length int
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("suggestion %d: range [%d,%d) invalid for buffer of length %d: %s", e.ID, e.Start, e.End, e.Length, e.Reason)
}

// ProviderError wraps a failure of an external analysis, paraphrase,
// compression, readiness or plagiarism provider.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// CheckRange validates s against a buffer of length runes.
func CheckRange(s Suggestion, length int) error {
	switch {
	case s.StartIndex < 0:
		return &RangeError{ID: s.ID, Start: s.StartIndex, End: s.EndIndex, Length: length, Reason: "start is negative"}
	case s.EndIndex > length:
		return &RangeError{ID: s.ID, Start: s.StartIndex, End: s.EndIndex, Length: length, Reason: "end is past the buffer"}
	case s.StartIndex > s.EndIndex:
		return &RangeError{ID: s.ID, Start: s.StartIndex, End: s.EndIndex, Length: length, Reason: "start is after end"}
	}
	return nil
}

// RuneLen is the length unit used for all suggestion offsets.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }
