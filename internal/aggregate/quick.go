package aggregate

import (
	"gopanel/internal/lookup"
)

// Range-worksheet constants for L1/L2 reviews. The published quick worksheets
// approximate dispersion with the raw score range instead of the weighted
// standard deviation: the enhanced score subtracts a fifth of the range and
// the interval half-width is half the range.
const (
	rangePenalty   = 0.2
	rangeHalfWidth = 0.5
)

// EstimateQuick reproduces the simplified L1/L2 worksheet arithmetic.
// It consumes the same weighted mean as the full path but swaps the
// t-interval machinery for the range approximation. The standard error is
// back-derived from the half-width so CI = enhanced +/- t*SE still holds.
func EstimateQuick(m Moments, scoreRange float64, n int) Uncertainty {
	enhanced := m.WeightedMean - rangePenalty*scoreRange
	half := rangeHalfWidth * scoreRange

	se := 0.0
	if t := lookup.TCritical(n); t > 0 {
		se = half / t
	}

	return Uncertainty{
		EnhancedScore: enhanced,
		StandardError: se,
		CI:            Interval{Low: enhanced - half, High: enhanced + half},
	}
}
