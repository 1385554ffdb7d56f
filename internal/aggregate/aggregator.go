package aggregate

import (
	"fmt"
	"math"

	"gopanel/domain/committee"
	"gopanel/domain/core"
	"gopanel/internal/lookup"

	"github.com/montanaflynn/stats"
)

// ScorePair is one (weight, score) observation fed to the aggregator.
// An expert scoring three angles contributes three pairs, all carrying the
// expert's resolved weight.
type ScorePair struct {
	ExpertID core.ExpertID
	Weight   float64
	Score    float64
}

// Moments holds the weighted first and second moments of the score set
type Moments struct {
	WeightedMean   float64
	SigmaBiased    float64
	SigmaCorrected float64
	SumWeights     float64
}

// ComputeMoments computes the weighted mean, the biased weighted standard
// deviation, and the Bessel-corrected standard deviation for n distinct
// experts. All values are exact; rounding is the presentation layer's job.
func ComputeMoments(pairs []ScorePair, n int) (Moments, error) {
	var sumW, sumWS float64
	for _, p := range pairs {
		if p.Weight < 0 {
			return Moments{}, fmt.Errorf("%w: %f", core.ErrNegativeWeight, p.Weight)
		}
		sumW += p.Weight
		sumWS += p.Weight * p.Score
	}
	if sumW == 0 {
		return Moments{}, core.ErrZeroWeights
	}

	mean := sumWS / sumW

	var sumWD2 float64
	for _, p := range pairs {
		d := p.Score - mean
		sumWD2 += p.Weight * d * d
	}
	sigma := math.Sqrt(sumWD2 / sumW)

	return Moments{
		WeightedMean:   mean,
		SigmaBiased:    sigma,
		SigmaCorrected: sigma * lookup.BesselFactor(n),
		SumWeights:     sumW,
	}, nil
}

// Diagnostics are unweighted descriptive statistics of the raw scores,
// reported alongside the weighted moments for worksheet rendering.
type Diagnostics struct {
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`
	MedianScore float64 `json:"median_score"`
	ScoreRange  float64 `json:"score_range"`
}

// ComputeDiagnostics derives the descriptive block from the raw score entries
func ComputeDiagnostics(entries []committee.ScoreEntry) (Diagnostics, error) {
	if len(entries) == 0 {
		return Diagnostics{}, fmt.Errorf("no score entries")
	}
	raw := make([]float64, len(entries))
	for i, e := range entries {
		raw[i] = float64(e.RawScore)
	}

	min, err := stats.Min(raw)
	if err != nil {
		return Diagnostics{}, err
	}
	max, err := stats.Max(raw)
	if err != nil {
		return Diagnostics{}, err
	}
	median, err := stats.Median(raw)
	if err != nil {
		return Diagnostics{}, err
	}

	return Diagnostics{
		MinScore:    min,
		MaxScore:    max,
		MedianScore: median,
		ScoreRange:  max - min,
	}, nil
}

// ExpertMeans returns each scoring expert's unweighted mean across the angles
// they scored. Used for dissent flagging.
func ExpertMeans(entries []committee.ScoreEntry) map[core.ExpertID]float64 {
	sums := make(map[core.ExpertID]float64)
	counts := make(map[core.ExpertID]int)
	for _, e := range entries {
		sums[e.ExpertID] += float64(e.RawScore)
		counts[e.ExpertID]++
	}
	means := make(map[core.ExpertID]float64, len(sums))
	for id, sum := range sums {
		means[id] = sum / float64(counts[id])
	}
	return means
}
