package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"writeassist/internal/analysis"
	"writeassist/internal/domain"
)

const (
	analyzePrompt = `You are an academic writing assistant. Find spelling, grammar, style and clarity problems in the user's text.
Reply with a JSON array only. Each element has the fields "type" (one of "Spelling", "Grammar", "Style", "Clarity"), "category", "original" (an exact substring of the text), "suggestion" and "explanation".`

	paraphrasePrompt = `Rewrite the user's text in three ways. Reply with a JSON object only, with the string fields "formal", "concise" and "detailed".`

	compressPrompt = `Compress the user's text to about %d words while keeping its meaning. Reply with the compressed text only.`
)

// Analyzer asks the model for findings and anchors them in the text.
type Analyzer struct{ c *Client }

func NewAnalyzer(c *Client) *Analyzer { return &Analyzer{c: c} }

func (a *Analyzer) Analyze(ctx context.Context, text string) ([]domain.Suggestion, error) {
	reply, err := a.c.Complete(ctx, analyzePrompt, text)
	if err != nil {
		return nil, err
	}
	var drafts []analysis.Draft
	if err := json.Unmarshal([]byte(extractJSON(reply, '[', ']')), &drafts); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return analysis.Anchor(text, drafts, 1), nil
}

// Paraphraser asks the model for formal, concise and detailed variants.
type Paraphraser struct{ c *Client }

func NewParaphraser(c *Client) *Paraphraser { return &Paraphraser{c: c} }

func (p *Paraphraser) Paraphrase(ctx context.Context, text string) (domain.ParaphraseResult, error) {
	reply, err := p.c.Complete(ctx, paraphrasePrompt, text)
	if err != nil {
		return domain.ParaphraseResult{}, err
	}
	var res domain.ParaphraseResult
	if err := json.Unmarshal([]byte(extractJSON(reply, '{', '}')), &res); err != nil {
		return domain.ParaphraseResult{}, fmt.Errorf("decode paraphrase: %w", err)
	}
	if res.Formal == "" && res.Concise == "" && res.Detailed == "" {
		return domain.ParaphraseResult{}, errors.New("paraphrase reply has no variants")
	}
	return res, nil
}

// Compressor asks the model for a shorter version of the text.
type Compressor struct{ c *Client }

func NewCompressor(c *Client) *Compressor { return &Compressor{c: c} }

func (p *Compressor) Compress(ctx context.Context, text string, targetWords int) (string, error) {
	if targetWords <= 0 {
		return "", errors.New("target word count must be positive")
	}
	reply, err := p.c.Complete(ctx, fmt.Sprintf(compressPrompt, targetWords), text)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(stripFences(reply))
	if out == "" {
		return "", errors.New("compression reply is empty")
	}
	return out, nil
}

// extractJSON trims a model reply down to the outermost open..close pair,
// dropping markdown fences and chatter around it.
func extractJSON(reply string, open, close byte) string {
	s := stripFences(reply)
	i := strings.IndexByte(s, open)
	j := strings.LastIndexByte(s, close)
	if i < 0 || j < i {
		return s
	}
	return s[i : j+1]
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
