package aggregate

import (
	"fmt"

	"gopanel/domain/committee"
	"gopanel/domain/core"
)

// Blend coefficients for the L3+ combined weight formula
const (
	domainBlend = 0.4
	angleBlend  = 0.6
)

// ResolveWeights computes each expert's effective weight for the review.
//
// Two published calibrations sit behind this one entry point: L1/L2 reviews
// use the role-tier constants (high 3, medium 2, low 1), L3+ reviews blend
// domain relevance with angle relevance and scale by the level multiplier.
// Which one applies is a property of the level, never of the caller.
func ResolveWeights(in *committee.ReviewInput) (map[core.ExpertID]float64, error) {
	profile, err := in.Level.Profile()
	if err != nil {
		return nil, err
	}

	weights := make(map[core.ExpertID]float64, len(in.Experts))
	for _, e := range in.Experts {
		if !e.Domain.IsKnown() {
			return nil, core.NewUnknownDomainError(string(e.Domain))
		}
		w, err := expertWeight(e, in, profile)
		if err != nil {
			return nil, err
		}
		if w < 0 {
			return nil, fmt.Errorf("%w: resolved weight %f for expert %s", core.ErrNegativeWeight, w, e.ID)
		}
		weights[e.ID] = w
	}
	return weights, nil
}

func expertWeight(e committee.Expert, in *committee.ReviewInput, profile committee.LevelProfile) (float64, error) {
	if !in.Level.UsesBlendedWeights() {
		w, err := e.Tier.TierWeight()
		if err != nil {
			return 0, fmt.Errorf("level %s requires a role tier for expert %s: %w", in.Level, e.ID, err)
		}
		return w, nil
	}

	angle := e.DomainWeight
	if rel, ok := in.AngleRelevance[e.ID]; ok {
		angle = rel
	}
	return (domainBlend*e.DomainWeight + angleBlend*angle) * profile.Multiplier, nil
}
