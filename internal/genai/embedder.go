package genai

import (
	"context"
	"errors"
	"sync"
)

// Embedder is a remote embeddings backend. It understands both the OpenAI
// response shape and the Ollama-native one.
type Embedder struct {
	c *Client

	mu        sync.Mutex
	dimension int
}

func NewEmbedder(c *Client) *Embedder { return &Embedder{c: c} }

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "genai" }

// Prepare is not required for remote embedding; the dimension is learned on
// the first Embed call.
func (e *Embedder) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality seen so far, 0 before the first call.
func (e *Embedder) Dimension() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dimension
}

// Embed returns an embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	body := map[string]any{"model": e.c.embeddingModel, "input": text, "prompt": text}
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
		Embedding []float64 `json:"embedding"`
	}
	if err := e.c.postJSON(ctx, "/embeddings", body, &out); err != nil {
		return nil, err
	}
	v := out.Embedding
	if len(out.Data) > 0 {
		v = out.Data[0].Embedding
	}
	if len(v) == 0 {
		return nil, errors.New("no embedding returned")
	}
	e.mu.Lock()
	if e.dimension == 0 {
		e.dimension = len(v)
	}
	e.mu.Unlock()
	return v, nil
}
