package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writeassist/internal/domain"
	"writeassist/internal/suggest"
)

func TestAnchor_PlacesDraftsByText(t *testing.T) {
	text := "AI is good and AI is fast"
	got := Anchor(text, []Draft{
		{Kind: domain.KindGrammar, Original: "is", Replacement: "was"},
		{Kind: domain.KindStyle, Original: "good", Replacement: "great"},
		{Kind: domain.KindGrammar, Original: "is", Replacement: "was"},
	}, 1)

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 3, got[0].StartIndex)
	assert.Equal(t, 6, got[1].StartIndex)
	assert.Equal(t, 18, got[2].StartIndex)
	assert.Contains(t, got[1].Context, "good")
}

func TestAnchor_DropsMissingEmptyAndOverlapping(t *testing.T) {
	got := Anchor("one two three", []Draft{
		{Original: "two three", Replacement: "2 3"},
		{Original: "missing"},
		{Original: ""},
		{Original: "two"},
		{Original: "one", Kind: "Bogus"},
	}, 10)

	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].ID)
	assert.Equal(t, 11, got[1].ID)
	assert.Equal(t, 0, got[1].StartIndex)
	assert.Equal(t, domain.KindGrammar, got[1].Kind)
}

func TestAnchor_OutputSatisfiesStoreContract(t *testing.T) {
	text := "naïve writers write naïve prose"
	got := Anchor(text, []Draft{
		{Original: "naïve", Replacement: "naive"},
		{Original: "naïve", Replacement: "naive"},
		{Original: "prose", Replacement: "text"},
	}, 1)
	require.Len(t, got, 3)

	s := suggest.NewStore(text, got)
	for _, sg := range s.List() {
		require.NoError(t, s.Accept(sg.ID))
	}
	assert.Equal(t, "naive writers write naive text", s.Buffer())
}
