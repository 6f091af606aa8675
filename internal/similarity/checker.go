// Package similarity is a local plagiarism checker. Reference documents are
// chunked, embedded and indexed in a vector store; a manuscript is scored by
// how many of its words sit in chunks that closely match a reference.
package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"writeassist/internal/chunker"
	"writeassist/internal/domain"
)

const (
	defaultThreshold = 0.8
	workers          = 4
)

// Options configures a Checker.
type Options struct {
	// Threshold is the minimum cosine score for a chunk to count as matched.
	Threshold float64
}

// Checker implements domain.PlagiarismChecker over a reference corpus.
type Checker struct {
	references []domain.Document
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	threshold  float64

	mu      sync.Mutex
	indexed bool
	empty   bool
}

func NewChecker(references []domain.Document, ch domain.Chunker, emb domain.Embedder, store domain.VectorStore, opts Options) *Checker {
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		opts.Threshold = defaultThreshold
	}
	return &Checker{
		references: references,
		chunker:    ch,
		embedder:   emb,
		store:      store,
		threshold:  opts.Threshold,
	}
}

// Index chunks, embeds and stores the references. Check calls it on first use.
func (c *Checker) Index(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked(ctx)
}

func (c *Checker) indexLocked(ctx context.Context) error {
	if c.indexed {
		return nil
	}
	var chunks []domain.Chunk
	for _, d := range c.references {
		cs, err := c.chunker.Chunk(d)
		if err != nil {
			return fmt.Errorf("chunk %s: %w", d.Path, err)
		}
		chunks = append(chunks, cs...)
	}
	if len(chunks) == 0 {
		c.indexed, c.empty = true, true
		return nil
	}
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	if err := c.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare %s embedder: %w", c.embedder.Name(), err)
	}
	vectors, err := c.embedAll(ctx, texts)
	if err != nil {
		return err
	}
	dim := c.embedder.Dimension()
	if dim == 0 {
		dim = len(vectors[0])
	}
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	if err := c.store.Init(ctx, dim); err != nil {
		return err
	}
	if err := c.store.Upsert(ctx, chunks, vectors); err != nil {
		return err
	}
	c.indexed, c.empty = true, false
	return nil
}

func (c *Checker) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range texts {
		g.Go(func() error {
			v, err := c.embedder.Embed(gctx, texts[i])
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Check scores text against the references.
func (c *Checker) Check(ctx context.Context, text string) (domain.PlagiarismResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.indexLocked(ctx); err != nil {
		return domain.PlagiarismResult{}, err
	}

	result := domain.PlagiarismResult{AIContentScore: AIContentScore(text), Sources: []domain.Source{}}
	if c.empty {
		return result, nil
	}
	chunks, err := c.chunker.Chunk(domain.Document{ID: "manuscript", Content: text})
	if err != nil {
		return domain.PlagiarismResult{}, err
	}
	if len(chunks) == 0 {
		return result, nil
	}

	best := make([]domain.SearchResult, len(chunks))
	found := make([]bool, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range chunks {
		g.Go(func() error {
			v, err := c.embedder.Embed(gctx, chunks[i].Text)
			if err != nil {
				return err
			}
			hits, err := c.store.Search(gctx, v, 1)
			if err != nil {
				return err
			}
			if len(hits) > 0 {
				best[i], found[i] = hits[0], true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.PlagiarismResult{}, err
	}

	total, matched := 0, 0
	perSource := make(map[string]int)
	for i, ch := range chunks {
		words := chunker.WordCount(ch.Text)
		total += words
		if !found[i] || best[i].Score < c.threshold {
			continue
		}
		matched += words
		src := best[i].Chunk.Path
		if src == "" {
			src = best[i].Chunk.DocumentID
		}
		perSource[src] += words
	}
	if total == 0 {
		return result, nil
	}
	result.SimilarityScore = percent(matched, total)
	for src, words := range perSource {
		result.Sources = append(result.Sources, domain.Source{URL: src, Percentage: percent(words, total)})
	}
	sort.Slice(result.Sources, func(i, j int) bool {
		a, b := result.Sources[i], result.Sources[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		return a.URL < b.URL
	})
	return result, nil
}

func percent(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
