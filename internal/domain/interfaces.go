package domain

import "context"

// Kind classifies a suggestion for display purposes.
type Kind string

const (
	KindSpelling Kind = "Spelling"
	KindGrammar  Kind = "Grammar"
	KindStyle    Kind = "Style"
	KindClarity  Kind = "Clarity"
)

// Kinds lists every suggestion kind in display order.
var Kinds = []Kind{KindSpelling, KindGrammar, KindStyle, KindClarity}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSpelling, KindGrammar, KindStyle, KindClarity:
		return true
	}
	return false
}

// Suggestion proposes replacing Original, found at the half-open rune range
// [StartIndex, EndIndex) of the current buffer, with Replacement.
type Suggestion struct {
	ID          int    `json:"id"`
	Kind        Kind   `json:"type"`
	Category    string `json:"category"`
	Original    string `json:"original"`
	Replacement string `json:"suggestion"`
	Context     string `json:"context"`
	Explanation string `json:"explanation"`
	StartIndex  int    `json:"startIndex"`
	EndIndex    int    `json:"endIndex"`
}

// ParaphraseResult holds the three rewriting variants offered to the user.
type ParaphraseResult struct {
	Formal   string `json:"formal"`
	Concise  string `json:"concise"`
	Detailed string `json:"detailed"`
}

// ReadinessDimension is one axis of the submission readiness score.
type ReadinessDimension struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Details string `json:"details"`
}

// Source is a document the checked text resembles.
type Source struct {
	URL        string `json:"url"`
	Percentage int    `json:"percentage"`
}

// PlagiarismResult reports similarity and AI-content percentages.
type PlagiarismResult struct {
	SimilarityScore int      `json:"similarityScore"`
	AIContentScore  int      `json:"aiContentScore"`
	Sources         []Source `json:"sources"`
}

// Document represents a single text file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a run of sentences from a document used for similarity matching.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Path       string
	Text       string
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Analyzer produces a batch of suggestions for a text. Implementations must
// return suggestions whose ranges lie inside text, match Original, do not
// overlap and carry unique ids.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]Suggestion, error)
}

// Paraphraser rewrites text in several registers.
type Paraphraser interface {
	Paraphrase(ctx context.Context, text string) (ParaphraseResult, error)
}

// Compressor shortens text to roughly targetWords words.
type Compressor interface {
	Compress(ctx context.Context, text string, targetWords int) (string, error)
}

// ReadinessScorer rates how ready a manuscript is for submission.
type ReadinessScorer interface {
	Score(ctx context.Context, text string) ([]ReadinessDimension, error)
}

// PlagiarismChecker estimates copied and machine-generated content.
type PlagiarismChecker interface {
	Check(ctx context.Context, text string) (PlagiarismResult, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Chunker splits documents into chunks suitable for similarity matching.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float64) error
	Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error)
	Clear(ctx context.Context) error
}
