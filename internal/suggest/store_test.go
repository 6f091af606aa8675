package suggest

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writeassist/internal/domain"
)

func twoSuggestions() (string, []domain.Suggestion) {
	return "AI is good", []domain.Suggestion{
		{ID: 1, Kind: domain.KindGrammar, Original: "is", Replacement: "was", StartIndex: 3, EndIndex: 5},
		{ID: 2, Kind: domain.KindStyle, Original: "good", Replacement: "great", StartIndex: 6, EndIndex: 10},
	}
}

func TestAccept_ShiftsLaterSuggestions(t *testing.T) {
	buf, batch := twoSuggestions()
	s := NewStore(buf, batch)

	require.NoError(t, s.Accept(1))
	assert.Equal(t, "AI was good", s.Buffer())

	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, 7, got.StartIndex)
	assert.Equal(t, 11, got.EndIndex)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Accept(2))
	assert.Equal(t, "AI was great", s.Buffer())
	assert.Zero(t, s.Len())
}

func TestAccept_DoesNotShiftEarlierSuggestions(t *testing.T) {
	buf, batch := twoSuggestions()
	s := NewStore(buf, batch)

	require.NoError(t, s.Accept(2))
	assert.Equal(t, "AI is great", s.Buffer())

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 3, got.StartIndex)
	assert.Equal(t, 5, got.EndIndex)
}

func TestAccept_EqualStartIsNotShifted(t *testing.T) {
	s := NewStore("abcdef", []domain.Suggestion{
		{ID: 1, Original: "ab", Replacement: "xyz", StartIndex: 0, EndIndex: 2},
		{ID: 2, Original: "a", Replacement: "q", StartIndex: 0, EndIndex: 1},
		{ID: 3, Original: "ef", Replacement: "", StartIndex: 4, EndIndex: 6},
	})

	require.NoError(t, s.Accept(1))
	assert.Equal(t, "xyzcdef", s.Buffer())

	same, _ := s.Get(2)
	assert.Equal(t, 0, same.StartIndex)
	assert.Equal(t, 1, same.EndIndex)

	later, _ := s.Get(3)
	assert.Equal(t, 5, later.StartIndex)
	assert.Equal(t, 7, later.EndIndex)
}

func TestAccept_UnknownIDLeavesStateUntouched(t *testing.T) {
	buf, batch := twoSuggestions()
	s := NewStore(buf, batch)
	before := s.List()

	err := s.Accept(999)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 999, nf.ID)

	assert.Equal(t, buf, s.Buffer())
	assert.Equal(t, before, s.List())
}

func TestAccept_RangeErrors(t *testing.T) {
	cases := []struct {
		name string
		sg   domain.Suggestion
	}{
		{"past end", domain.Suggestion{ID: 7, Original: "good!", StartIndex: 6, EndIndex: 11}},
		{"negative start", domain.Suggestion{ID: 7, Original: "A", StartIndex: -1, EndIndex: 0}},
		{"inverted", domain.Suggestion{ID: 7, Original: "", StartIndex: 5, EndIndex: 3}},
		{"stale text", domain.Suggestion{ID: 7, Original: "bad", StartIndex: 6, EndIndex: 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore("AI is good", []domain.Suggestion{tc.sg})
			err := s.Accept(7)
			var re *domain.RangeError
			require.True(t, errors.As(err, &re), "got %v", err)
			assert.Equal(t, 7, re.ID)
			assert.Equal(t, "AI is good", s.Buffer())
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestAccept_CountsRunesNotBytes(t *testing.T) {
	s := NewStore("naïve café ok", []domain.Suggestion{
		{ID: 1, Original: "naïve", Replacement: "naive", StartIndex: 0, EndIndex: 5},
		{ID: 2, Original: "ok", Replacement: "okay", StartIndex: 11, EndIndex: 13},
	})

	require.NoError(t, s.Accept(1))
	assert.Equal(t, "naive café ok", s.Buffer())

	require.NoError(t, s.Accept(2))
	assert.Equal(t, "naive café okay", s.Buffer())
}

func TestDismiss(t *testing.T) {
	buf, batch := twoSuggestions()
	s := NewStore(buf, batch)

	assert.True(t, s.Dismiss(1))
	assert.Equal(t, buf, s.Buffer())
	_, ok := s.Get(1)
	assert.False(t, ok)

	// positions of the rest are untouched
	got, _ := s.Get(2)
	assert.Equal(t, 6, got.StartIndex)

	before := s.List()
	assert.False(t, s.Dismiss(999))
	assert.False(t, s.Dismiss(1))
	assert.Equal(t, before, s.List())
	assert.Equal(t, buf, s.Buffer())
}

func TestInsert_SkipsRetiredAndDuplicateIDs(t *testing.T) {
	buf, batch := twoSuggestions()
	s := NewStore(buf, batch)
	s.Dismiss(1)

	n := s.Insert([]domain.Suggestion{
		{ID: 1, Original: "AI", StartIndex: 0, EndIndex: 2},
		{ID: 2, Original: "AI", StartIndex: 0, EndIndex: 2},
		{ID: 3, Original: "AI", StartIndex: 0, EndIndex: 2},
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, s.Len())
}

func TestReset_RetiresPreviousIDs(t *testing.T) {
	buf, batch := twoSuggestions()
	s := NewStore(buf, batch)

	s.Reset("new text", []domain.Suggestion{
		{ID: 2, Original: "new", StartIndex: 0, EndIndex: 3},
		{ID: 5, Original: "text", StartIndex: 4, EndIndex: 8},
	})
	assert.Equal(t, "new text", s.Buffer())
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].ID)
}

func TestList_OrdersByStartThenID(t *testing.T) {
	s := NewStore("abcdefgh", []domain.Suggestion{
		{ID: 9, StartIndex: 4, EndIndex: 5},
		{ID: 3, StartIndex: 0, EndIndex: 1},
		{ID: 2, StartIndex: 4, EndIndex: 4},
	})
	var ids []int
	for _, sg := range s.List() {
		ids = append(ids, sg.ID)
	}
	assert.Equal(t, []int{3, 2, 9}, ids)
}

// Random accept/dismiss sequences over non-overlapping suggestions keep every
// live range inside the buffer and matching its original text.
func TestAcceptDismiss_PreservesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}
	replacements := []string{"", "x", "longer words", "ü", "mid"}

	for round := 0; round < 50; round++ {
		var buf []rune
		var batch []domain.Suggestion
		for i, w := range words {
			if i > 0 {
				buf = append(buf, ' ')
			}
			start := len(buf)
			buf = append(buf, []rune(w)...)
			if rng.Intn(3) > 0 {
				batch = append(batch, domain.Suggestion{
					ID:          i + 1,
					Original:    w,
					Replacement: replacements[rng.Intn(len(replacements))],
					StartIndex:  start,
					EndIndex:    len(buf),
				})
			}
		}
		s := NewStore(string(buf), batch)

		for s.Len() > 0 {
			live := s.List()
			pick := live[rng.Intn(len(live))]
			if rng.Intn(2) == 0 {
				require.NoError(t, s.Accept(pick.ID))
			} else {
				require.True(t, s.Dismiss(pick.ID))
			}
			requireInvariants(t, s)
		}
	}
}

func requireInvariants(t *testing.T, s *Store) {
	t.Helper()
	runes := []rune(s.Buffer())
	seen := map[int]bool{}
	prevEnd := 0
	for _, sg := range s.List() {
		require.False(t, seen[sg.ID], "duplicate id %d", sg.ID)
		seen[sg.ID] = true
		require.NoError(t, domain.CheckRange(sg, len(runes)))
		require.GreaterOrEqual(t, sg.StartIndex, prevEnd, fmt.Sprintf("overlap at id %d", sg.ID))
		require.Equal(t, sg.Original, string(runes[sg.StartIndex:sg.EndIndex]))
		prevEnd = sg.EndIndex
	}
}
