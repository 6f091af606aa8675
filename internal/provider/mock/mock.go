// Package mock provides canned providers that stand in for a real language
// service. Each one waits for a configurable delay before answering.
package mock

import (
	"context"
	"time"

	"writeassist/internal/analysis"
	"writeassist/internal/domain"
)

// Analyzer places SampleDrafts (or the configured drafts) in whatever text it
// is given. Drafts whose text is absent are skipped.
type Analyzer struct {
	Drafts []analysis.Draft
	Delay  time.Duration
}

func NewAnalyzer(delay time.Duration) *Analyzer {
	return &Analyzer{Drafts: SampleDrafts, Delay: delay}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) ([]domain.Suggestion, error) {
	if err := wait(ctx, a.Delay); err != nil {
		return nil, err
	}
	return analysis.Anchor(text, a.Drafts, 1), nil
}

// Paraphraser always returns SampleParaphrase.
type Paraphraser struct {
	Delay time.Duration
}

func NewParaphraser(delay time.Duration) *Paraphraser { return &Paraphraser{Delay: delay} }

func (p *Paraphraser) Paraphrase(ctx context.Context, text string) (domain.ParaphraseResult, error) {
	if err := wait(ctx, p.Delay); err != nil {
		return domain.ParaphraseResult{}, err
	}
	return SampleParaphrase, nil
}

// ReadinessScorer always returns SampleReadiness.
type ReadinessScorer struct {
	Delay time.Duration
}

func NewReadinessScorer(delay time.Duration) *ReadinessScorer {
	return &ReadinessScorer{Delay: delay}
}

func (r *ReadinessScorer) Score(ctx context.Context, text string) ([]domain.ReadinessDimension, error) {
	if err := wait(ctx, r.Delay); err != nil {
		return nil, err
	}
	return append([]domain.ReadinessDimension(nil), SampleReadiness...), nil
}

// PlagiarismChecker always returns SamplePlagiarism.
type PlagiarismChecker struct {
	Delay time.Duration
}

func NewPlagiarismChecker(delay time.Duration) *PlagiarismChecker {
	return &PlagiarismChecker{Delay: delay}
}

func (c *PlagiarismChecker) Check(ctx context.Context, text string) (domain.PlagiarismResult, error) {
	if err := wait(ctx, c.Delay); err != nil {
		return domain.PlagiarismResult{}, err
	}
	res := SamplePlagiarism
	res.Sources = append([]domain.Source(nil), SamplePlagiarism.Sources...)
	return res, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
