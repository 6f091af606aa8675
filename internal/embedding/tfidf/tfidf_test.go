package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_RequiresPrepare(t *testing.T) {
	_, err := NewEmbedder().Embed(context.Background(), "text")
	assert.Error(t, err)
	assert.Error(t, NewEmbedder().Prepare(nil))
	assert.Error(t, NewEmbedder().Prepare([]string{"the and of"}))
}

func TestEmbedder_NormalizedAndComparable(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{
		"machine learning models learn from data",
		"the weather in spring is mild",
	}))
	ctx := context.Background()

	a, err := e.Embed(ctx, "models learn from data")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "mild spring weather")
	require.NoError(t, err)
	assert.Len(t, a, e.Dimension())

	norm := 0.0
	for _, v := range a {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	assert.Zero(t, dot)

	unknown, err := e.Embed(ctx, "zebra quantum")
	require.NoError(t, err)
	for _, v := range unknown {
		assert.Zero(t, v)
	}
}

func TestEmbedder_WordOrderMatters(t *testing.T) {
	ctx := context.Background()
	corpus := []string{"models learn patterns from data", "rain falls in spring"}

	cosine := func(e *Embedder, a, b string) float64 {
		va, err := e.Embed(ctx, a)
		require.NoError(t, err)
		vb, err := e.Embed(ctx, b)
		require.NoError(t, err)
		dot := 0.0
		for i := range va {
			dot += va[i] * vb[i]
		}
		return dot
	}

	shingled := NewEmbedder()
	require.NoError(t, shingled.Prepare(corpus))
	assert.InDelta(t, 1.0, cosine(shingled, "models learn patterns", "models learn patterns"), 1e-9)
	assert.Less(t, cosine(shingled, "models learn patterns", "patterns learn models"), 0.9)

	words := NewEmbedder(WithoutShingles())
	require.NoError(t, words.Prepare(corpus))
	assert.Less(t, words.Dimension(), shingled.Dimension())
	assert.InDelta(t, 1.0, cosine(words, "models learn patterns", "patterns learn models"), 1e-9)
}
