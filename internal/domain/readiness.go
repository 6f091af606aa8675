package domain

import "math"

// Score bands used to colour readiness values.
const (
	BandGood = "good"
	BandFair = "fair"
	BandPoor = "poor"
)

// OverallReadiness is the rounded mean of all dimension scores.
func OverallReadiness(dims []ReadinessDimension) int {
	if len(dims) == 0 {
		return 0
	}
	total := 0
	for _, d := range dims {
		total += d.Score
	}
	return int(math.Round(float64(total) / float64(len(dims))))
}

// ScoreBand maps a 0..100 score to a display band.
func ScoreBand(score int) string {
	switch {
	case score > 85:
		return BandGood
	case score > 60:
		return BandFair
	default:
		return BandPoor
	}
}
