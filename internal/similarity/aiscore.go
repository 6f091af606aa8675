package similarity

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
	wordPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// Stock phrases that machine-written prose leans on.
var commonTrigrams = map[string]struct{}{
	"one of the":       {},
	"as well as":       {},
	"in order to":      {},
	"it is a":          {},
	"this is a":        {},
	"a lot of":         {},
	"the rest of":      {},
	"the end of":       {},
	"in the same":      {},
	"at the same":      {},
	"in terms of":      {},
	"it is important":  {},
	"is important to":  {},
	"plays a crucial":  {},
	"a crucial role":   {},
	"in today's world": {},
	"on the other":     {},
	"the other hand":   {},
	"in addition to":   {},
	"due to the":       {},
}

// AIContentScore estimates, 0..100, how machine-generated text reads.
// Uniform sentence lengths weigh 70% and stock trigram density 30%.
// Texts with fewer than two sentences score 0.
func AIContentScore(text string) int {
	sd, mean, n := sentenceLengthStats(text)
	if n < 2 || mean == 0 {
		return 0
	}
	uniformity := clamp01(1 - (sd/mean)/0.6)
	stock := clamp01(trigramCommonness(tokenize(text)) * 20)
	return int(math.Round(100 * (0.7*uniformity + 0.3*stock)))
}

func sentenceLengthStats(text string) (sd, mean float64, n int) {
	var lengths []float64
	for _, s := range sentenceEnd.Split(text, -1) {
		if c := len(tokenize(s)); c > 0 {
			lengths = append(lengths, float64(c))
		}
	}
	if len(lengths) == 0 {
		return 0, 0, 0
	}
	total := 0.0
	for _, l := range lengths {
		total += l
	}
	mean = total / float64(len(lengths))
	var variance float64
	for _, l := range lengths {
		d := l - mean
		variance += d * d
	}
	variance /= float64(len(lengths))
	return math.Sqrt(variance), mean, len(lengths)
}

func trigramCommonness(words []string) float64 {
	if len(words) < 3 {
		return 0
	}
	total, common := 0, 0
	for i := 0; i+2 < len(words); i++ {
		total++
		if _, ok := commonTrigrams[words[i]+" "+words[i+1]+" "+words[i+2]]; ok {
			common++
		}
	}
	return float64(common) / float64(total)
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
