// Package compress shortens text to a target word count without calling a
// language model.
package compress

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"writeassist/internal/chunker"
)

var errTarget = errors.New("target word count must be positive")

// Truncate keeps the leading share of the text proportional to
// targetWords/words, cut back to the last space and closed with a period.
type Truncate struct{}

func NewTruncate() *Truncate { return &Truncate{} }

func (Truncate) Compress(ctx context.Context, text string, targetWords int) (string, error) {
	if targetWords <= 0 {
		return "", errTarget
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	words := chunker.WordCount(text)
	if words <= targetWords {
		return text, nil
	}
	runes := []rune(text)
	keep := int(math.Floor(float64(len(runes)) * float64(targetWords) / float64(words)))
	out := string(runes[:keep])
	if i := strings.LastIndex(out, " "); i > 0 {
		out = out[:i]
	}
	return out + ".", nil
}

// Frequency ranks sentences by word frequency (stopwords filtered) and keeps
// the best ones, in their original order, within the word budget. At least
// one sentence is always kept.
type Frequency struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewFrequency creates a frequency-based extractive compressor.
func NewFrequency() *Frequency {
	return &Frequency{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

func (f *Frequency) Compress(ctx context.Context, text string, targetWords int) (string, error) {
	if targetWords <= 0 {
		return "", errTarget
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if chunker.WordCount(text) <= targetWords {
		return text, nil
	}
	sentences := chunker.Sentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range f.tokens(sent) {
			if _, ok := f.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		toks := f.tokens(sent)
		sscore := 0.0
		for _, tok := range toks {
			sscore += freq[tok]
		}
		// normalize by length to avoid favouring long sentences
		if l := float64(len(toks)); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	var selected []int
	budget := targetWords
	for _, p := range scores {
		n := chunker.WordCount(sentences[p.idx])
		if len(selected) > 0 && n > budget {
			continue
		}
		selected = append(selected, p.idx)
		budget -= n
		if budget <= 0 {
			break
		}
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " "), nil
}

func (f *Frequency) tokens(text string) []string {
	return f.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "should", "now", "has", "have", "had",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
