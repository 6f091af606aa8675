// Package suggest keeps the editable buffer together with the suggestions
// that are still pending against it.
//
// Offsets are rune offsets. A Store is not safe for concurrent use; the owner
// serializes Accept, Dismiss and reads.
package suggest

import "writeassist/internal/domain"

// Store holds one buffer and the live suggestions against it.
type Store struct {
	buffer      string
	suggestions []domain.Suggestion
	retired     map[int]struct{}
}

// NewStore creates a store over buffer seeded with batch. The batch is
// trusted to satisfy the producer contract and is not re-validated here.
func NewStore(buffer string, batch []domain.Suggestion) *Store {
	s := &Store{buffer: buffer, retired: make(map[int]struct{})}
	s.Insert(batch)
	return s
}

// Buffer returns the current text.
func (s *Store) Buffer() string { return s.buffer }

// Len returns the number of live suggestions.
func (s *Store) Len() int { return len(s.suggestions) }

// Insert adds a batch of new suggestions. Ids that are live or were already
// accepted or dismissed are skipped. It returns the number inserted.
func (s *Store) Insert(batch []domain.Suggestion) int {
	n := 0
	for _, sg := range batch {
		if _, gone := s.retired[sg.ID]; gone {
			continue
		}
		if s.indexOf(sg.ID) >= 0 {
			continue
		}
		s.suggestions = append(s.suggestions, sg)
		n++
	}
	return n
}

// Reset replaces the buffer and the live suggestions, as after a fresh
// analysis pass. Retired ids stay retired.
func (s *Store) Reset(buffer string, batch []domain.Suggestion) {
	for _, sg := range s.suggestions {
		s.retired[sg.ID] = struct{}{}
	}
	s.buffer = buffer
	s.suggestions = nil
	s.Insert(batch)
}

// Get returns the live suggestion with the given id.
func (s *Store) Get(id int) (domain.Suggestion, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Suggestion{}, false
	}
	return s.suggestions[i], true
}

// List returns the live suggestions ordered by StartIndex, ties by id.
func (s *Store) List() []domain.Suggestion {
	out := append([]domain.Suggestion(nil), s.suggestions...)
	domain.SortByStart(out)
	return out
}

// Accept applies the suggestion's replacement to the buffer, removes it and
// shifts every live suggestion that starts after it by the length change.
// Suggestions starting at or before the accepted one keep their offsets.
//
// Accept returns *domain.NotFoundError for an unknown id and *domain.RangeError
// when the suggestion no longer lines up with the buffer; in both cases
// nothing is modified.
func (s *Store) Accept(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return &domain.NotFoundError{ID: id}
	}
	target := s.suggestions[i]

	runes := []rune(s.buffer)
	if err := domain.CheckRange(target, len(runes)); err != nil {
		return err
	}
	if string(runes[target.StartIndex:target.EndIndex]) != target.Original {
		return &domain.RangeError{
			ID:     target.ID,
			Start:  target.StartIndex,
			End:    target.EndIndex,
			Length: len(runes),
			Reason: "text at range does not match original",
		}
	}

	delta := domain.RuneLen(target.Replacement) - domain.RuneLen(target.Original)

	next := make([]rune, 0, len(runes)+delta)
	next = append(next, runes[:target.StartIndex]...)
	next = append(next, []rune(target.Replacement)...)
	next = append(next, runes[target.EndIndex:]...)
	s.buffer = string(next)

	s.remove(i)
	for j := range s.suggestions {
		r := &s.suggestions[j]
		if r.StartIndex > target.StartIndex {
			r.StartIndex += delta
			r.EndIndex += delta
		}
	}
	return nil
}

// Dismiss removes the suggestion without touching the buffer. It reports
// whether a live suggestion was removed; an unknown id is a no-op.
func (s *Store) Dismiss(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.remove(i)
	return true
}

func (s *Store) indexOf(id int) int {
	for i := range s.suggestions {
		if s.suggestions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) remove(i int) {
	s.retired[s.suggestions[i].ID] = struct{}{}
	s.suggestions = append(s.suggestions[:i], s.suggestions[i+1:]...)
}
