// Package lookup holds the static calibration tables the aggregation pipeline
// reads: shrinkage factors, small-sample Bessel corrections, Student-t critical
// values, and intra-class correlation adjustments. Tables are versioned, loaded
// once, and never mutated, so they are safe to share across any number of
// concurrent aggregations without locking.
package lookup

import (
	"math"

	"gopanel/domain/committee"

	"gonum.org/v1/gonum/stat/distuv"
)

// TableVersion identifies the published calibration. It participates in the
// result fingerprint so a recalibration can never silently collide with old
// results.
const TableVersion = "committee-tables/1"

// Shrinkage returns the sample-size-dependent penalty factor lambda(n)
// applied to the corrected standard deviation when deriving the enhanced
// score. Smaller committees get penalized harder.
func Shrinkage(n int) float64 {
	switch {
	case n <= 3:
		return 1.2
	case n <= 5:
		return 0.9
	case n <= 9:
		return 0.7
	case n <= 14:
		return 0.6
	default:
		return 0.5
	}
}

// BesselFactor returns the step-function approximation of the unbiased
// small-sample standard deviation correction. Always >= 1.
func BesselFactor(n int) float64 {
	switch {
	case n <= 3:
		return 1.3
	case n <= 5:
		return 1.15
	case n <= 10:
		return 1.10
	default:
		return 1.05
	}
}

// TCritical returns the published two-sided 95% Student-t critical value for
// a committee of n experts. These are deliberately conservative worksheet
// constants, not exact quantiles; see ExactTCritical for the reference check.
func TCritical(n int) float64 {
	switch {
	case n <= 3:
		return 4.0
	case n <= 5:
		return 3.0
	case n <= 9:
		return 2.4
	case n <= 14:
		return 2.2
	default:
		return 2.1
	}
}

// ExactTCritical computes the exact two-sided 95% Student-t quantile with
// n-1 degrees of freedom. Used as a reference check against the published
// table; the table remains canonical because the worksheets were calibrated
// against it (at n=2 the exact df=1 quantile is 12.7, which the published
// calibration intentionally caps at 4.0).
func ExactTCritical(n int) float64 {
	if n < 2 {
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	return dist.Quantile(0.975)
}

// SEMultiplier returns the published standard-error scaling for a correlation
// class. The bool reports whether the label was recognized; callers fall back
// to mixed (with a warning) on unknown labels rather than failing.
func SEMultiplier(class committee.CorrelationClass) (float64, bool) {
	switch class {
	case committee.CorrelationMixed:
		return 1.3, true
	case committee.CorrelationMajoritySame:
		return 1.7, true
	case committee.CorrelationAllSame:
		return 2.0, true
	default:
		return 1.3, false
	}
}

// RhoEstimate returns the intra-class correlation point estimate behind each
// label. This is the alternate presentation of the same correction; the fixed
// multipliers from SEMultiplier stay canonical because they are n-independent
// and match the published worksheets exactly.
func RhoEstimate(class committee.CorrelationClass) float64 {
	switch class {
	case committee.CorrelationMajoritySame:
		return 0.20
	case committee.CorrelationAllSame:
		return 0.35
	default:
		return 0.075
	}
}

// RhoAdjustedMultiplier derives the SE scaling from an explicit intra-class
// correlation: sqrt(1 + (n-1) * rho). Offered for callers that measured rho
// directly instead of bucketing it.
func RhoAdjustedMultiplier(n int, rho float64) float64 {
	if n < 1 || rho < 0 {
		return 1
	}
	return math.Sqrt(1 + float64(n-1)*rho)
}
