package committee

import (
	"fmt"
	"sort"

	"gopanel/domain/core"
)

// ReviewInput is the complete, validated input set for one aggregation.
// It is assembled once by the collection layer and never mutated afterwards;
// the aggregation result is a pure function of it.
type ReviewInput struct {
	Level   ReviewLevel  `json:"review_level"`
	Experts []Expert     `json:"experts"`
	Scores  []ScoreEntry `json:"scores"`

	// Correlation is optional; unknown or empty labels degrade to mixed
	// at estimation time rather than failing validation.
	Correlation CorrelationClass `json:"correlation_class,omitempty"`

	// AngleRelevance is the per-expert angle-relevance weight in [0,1] used by
	// the L3+ blended formula. Experts without an entry fall back to their
	// domain weight.
	AngleRelevance map[core.ExpertID]float64 `json:"angle_relevance,omitempty"`
}

// Validate enforces every input invariant that aborts an aggregation:
// known level, committee size within the level profile, scores on the 1-5
// scale, no duplicate (expert, angle) pairs, no scores from unlisted experts.
func (in *ReviewInput) Validate() error {
	profile, err := in.Level.Profile()
	if err != nil {
		return err
	}

	listed := make(map[core.ExpertID]Expert, len(in.Experts))
	for _, e := range in.Experts {
		if !e.Domain.IsKnown() {
			return core.NewUnknownDomainError(string(e.Domain))
		}
		if e.DomainWeight < 0 {
			return fmt.Errorf("%w: expert %s", core.ErrNegativeWeight, e.ID)
		}
		if _, dup := listed[e.ID]; dup {
			return fmt.Errorf("expert %s listed twice", e.ID)
		}
		listed[e.ID] = e
	}

	seen := make(map[string]bool, len(in.Scores))
	scoring := make(map[core.ExpertID]bool)
	for _, s := range in.Scores {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := listed[s.ExpertID]; !ok {
			return core.NewNotFoundError("expert", s.ExpertID.String())
		}
		key := s.ExpertID.String() + "\x00" + s.AngleID.String()
		if seen[key] {
			return core.NewDuplicateScoreError(s.ExpertID.String(), s.AngleID.String())
		}
		seen[key] = true
		scoring[s.ExpertID] = true
	}

	n := len(scoring)
	if n < 2 {
		return fmt.Errorf("%w: got %d", core.ErrTooFewExperts, n)
	}
	if n < profile.MinExperts {
		return fmt.Errorf("level %s requires at least %d experts, got %d",
			in.Level, profile.MinExperts, n)
	}
	if n > profile.MaxExperts {
		return fmt.Errorf("%w: level %s allows at most %d, got %d",
			core.ErrCommitteeTooLarge, in.Level, profile.MaxExperts, n)
	}

	for id, rel := range in.AngleRelevance {
		if rel < 0 || rel > 1 {
			return fmt.Errorf("angle relevance for expert %s must be in [0,1], got %f", id, rel)
		}
	}

	return nil
}

// DistinctExperts returns the number of distinct experts that submitted scores
func (in *ReviewInput) DistinctExperts() int {
	scoring := make(map[core.ExpertID]bool)
	for _, s := range in.Scores {
		scoring[s.ExpertID] = true
	}
	return len(scoring)
}

// ExpertByID returns the listed expert for an ID
func (in *ReviewInput) ExpertByID(id core.ExpertID) (Expert, bool) {
	for _, e := range in.Experts {
		if e.ID == id {
			return e, true
		}
	}
	return Expert{}, false
}

// FingerprintParts serializes every input fact that influences the result.
// Sorting happens inside core.ComputeFingerprint, so supply order is free.
func (in *ReviewInput) FingerprintParts() []string {
	parts := make([]string, 0, len(in.Experts)+len(in.Scores)+2)
	parts = append(parts, fmt.Sprintf("level=%s", in.Level))
	parts = append(parts, fmt.Sprintf("corr=%s", in.Correlation))
	for _, e := range in.Experts {
		parts = append(parts, fmt.Sprintf("expert=%s:%s:%.17g:%s", e.ID, e.Domain, e.DomainWeight, e.Tier))
	}
	for _, s := range in.Scores {
		parts = append(parts, fmt.Sprintf("score=%s:%s:%d", s.ExpertID, s.AngleID, s.RawScore))
	}
	ids := make([]string, 0, len(in.AngleRelevance))
	for id := range in.AngleRelevance {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("angle_rel=%s:%.17g", id, in.AngleRelevance[core.ExpertID(id)]))
	}
	return parts
}
