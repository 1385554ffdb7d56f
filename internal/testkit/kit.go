// Package testkit generates synthetic committees and score sets for tests.
package testkit

import (
	"fmt"
	"math/rand"

	"gopanel/domain/committee"
	"gopanel/domain/core"
)

// Kit deterministically generates review inputs from a seed
type Kit struct {
	rng *rand.Rand
}

// NewKit creates a kit with a fixed seed so generated fixtures are stable
func NewKit(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// domains cycles committee composition through every category
var domains = []committee.DomainCategory{
	committee.DomainBuild, committee.DomainRun, committee.DomainSecure,
	committee.DomainData, committee.DomainProduct, committee.DomainStrategy,
}

// Committee generates n experts with round-robin domains and the given level
func (k *Kit) Committee(n int) []committee.Expert {
	experts := make([]committee.Expert, n)
	tiers := []committee.RoleTier{committee.TierHigh, committee.TierMedium, committee.TierLow}
	for i := range experts {
		experts[i] = committee.Expert{
			ID:           core.ExpertID(fmt.Sprintf("expert-%02d", i+1)),
			Domain:       domains[i%len(domains)],
			DomainWeight: 0.5 + 0.5*k.rng.Float64(),
			Tier:         tiers[i%len(tiers)],
		}
	}
	return experts
}

// UniformScores gives every expert the same score on every angle
func (k *Kit) UniformScores(experts []committee.Expert, angles int, score int) []committee.ScoreEntry {
	var entries []committee.ScoreEntry
	for _, e := range experts {
		for a := 0; a < angles; a++ {
			entries = append(entries, committee.ScoreEntry{
				ExpertID: e.ID,
				AngleID:  core.AngleID(fmt.Sprintf("angle-%d", a+1)),
				RawScore: score,
			})
		}
	}
	return entries
}

// SpreadScores assigns each expert a fixed score from the given list,
// cycling when there are more experts than scores. One angle per expert.
func SpreadScores(experts []committee.Expert, scores []int) []committee.ScoreEntry {
	entries := make([]committee.ScoreEntry, len(experts))
	for i, e := range experts {
		entries[i] = committee.ScoreEntry{
			ExpertID: e.ID,
			AngleID:  core.AngleID("angle-1"),
			RawScore: scores[i%len(scores)],
		}
	}
	return entries
}

// Input assembles a full review input at the given level
func (k *Kit) Input(level committee.ReviewLevel, experts []committee.Expert, scores []committee.ScoreEntry) *committee.ReviewInput {
	return &committee.ReviewInput{
		Level:   level,
		Experts: experts,
		Scores:  scores,
	}
}
