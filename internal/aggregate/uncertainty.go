package aggregate

import (
	"math"

	"gopanel/domain/committee"
	"gopanel/internal/lookup"
)

// Interval is a closed confidence interval on the 1-5 score scale
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Width returns high - low
func (i Interval) Width() float64 { return i.High - i.Low }

// Uncertainty is the output of the estimation stage: the shrinkage-penalized
// point estimate, the correlation-adjusted standard error, and the 95% CI.
type Uncertainty struct {
	EnhancedScore float64
	StandardError float64
	CI            Interval

	// EffectiveClass is the correlation class actually applied; Defaulted is
	// true when an unknown label was replaced by mixed.
	EffectiveClass committee.CorrelationClass
	Defaulted      bool
}

// EstimateUncertainty derives the enhanced score and confidence interval from
// the weighted moments. An unknown correlation label is a non-critical
// classification: it only scales the uncertainty band, so it degrades to
// mixed instead of failing.
func EstimateUncertainty(m Moments, n int, class committee.CorrelationClass) Uncertainty {
	enhanced := m.WeightedMean - lookup.Shrinkage(n)*m.SigmaCorrected

	mult, known := lookup.SEMultiplier(class)
	effective := class
	if !known {
		effective = committee.CorrelationMixed
	}

	se := m.SigmaCorrected / math.Sqrt(float64(n)) * mult
	margin := lookup.TCritical(n) * se

	return Uncertainty{
		EnhancedScore:  enhanced,
		StandardError:  se,
		CI:             Interval{Low: enhanced - margin, High: enhanced + margin},
		EffectiveClass: effective,
		Defaulted:      !known && class != "",
	}
}

// Sufficiency maps CI width to the [0,1] information-sufficiency metric.
// A CI spanning the whole 1-5 scale (width >= 4) carries no information.
func Sufficiency(ci Interval) float64 {
	is := 1 - ci.Width()/committee.ScaleWidth
	if is < 0 {
		return 0
	}
	if is > 1 {
		return 1
	}
	return is
}
