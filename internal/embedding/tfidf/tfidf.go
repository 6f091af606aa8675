// Package tfidf is a local embedder for reference matching. Features are the
// content words of a text plus adjacent word pairs, so copied passages score
// higher than texts that merely share vocabulary.
package tfidf

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Embedder is a TF-IDF vectorizer over a reference corpus. Features absent
// from the corpus are ignored when embedding new text.
type Embedder struct {
	index     map[string]int
	idf       []float64
	stopwords map[string]struct{}
	shingles  bool
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithoutShingles restricts features to single words.
func WithoutShingles() Option {
	return func(e *Embedder) { e.shingles = false }
}

// NewEmbedder creates an unprepared embedder.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{stopwords: stopwords(), shingles: true}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the feature index and smoothed IDF values from corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("tfidf: empty corpus")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		for f := range e.counts(text) {
			df[f]++
		}
	}
	if len(df) == 0 {
		return errors.New("tfidf: no content words in corpus")
	}
	features := make([]string, 0, len(df))
	for f := range df {
		features = append(features, f)
	}
	sort.Strings(features)

	n := float64(len(corpus))
	e.index = make(map[string]int, len(features))
	e.idf = make([]float64, len(features))
	for i, f := range features {
		e.index[f] = i
		e.idf[i] = math.Log((1+n)/(1+float64(df[f]))) + 1
	}
	return nil
}

// Dimension is the number of indexed features, 0 before Prepare.
func (e *Embedder) Dimension() int { return len(e.idf) }

// Embed returns the L2-normalized vector of text. Text with no known
// features embeds to the zero vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.index == nil {
		return nil, errors.New("tfidf: embedder not prepared")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vec := make([]float64, len(e.idf))
	counts := e.counts(text)
	total := 0
	for f, c := range counts {
		if _, ok := e.index[f]; ok {
			total += c
		}
	}
	if total == 0 {
		return vec, nil
	}
	sum := 0.0
	for f, c := range counts {
		i, ok := e.index[f]
		if !ok {
			continue
		}
		vec[i] = float64(c) / float64(total) * e.idf[i]
		sum += vec[i] * vec[i]
	}
	l2 := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= l2
	}
	return vec, nil
}

// counts returns feature frequencies: content words and, when enabled,
// "a b" pairs of consecutive content words.
func (e *Embedder) counts(text string) map[string]int {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := e.stopwords[w]; !stop {
			words = append(words, w)
		}
	}
	out := make(map[string]int, 2*len(words))
	for i, w := range words {
		out[w]++
		if e.shingles && i > 0 {
			out[words[i-1]+" "+w]++
		}
	}
	return out
}

func stopwords() map[string]struct{} {
	words := strings.Fields(`a an the and or but if then else for to of in on at by with as is are
		was were be been being it its this that these those from up down over under again further
		than so such into about between through during before after above below out off own same
		too very can will just don should now we our they their has have had do does`)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
