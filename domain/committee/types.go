package committee

import (
	"fmt"

	"gopanel/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// DomainCategory is an expert's primary area of authority
type DomainCategory string

const (
	DomainBuild    DomainCategory = "build"
	DomainRun      DomainCategory = "run"
	DomainSecure   DomainCategory = "secure"
	DomainData     DomainCategory = "data"
	DomainProduct  DomainCategory = "product"
	DomainStrategy DomainCategory = "strategy"
)

// KnownDomains lists every valid domain category
var KnownDomains = []DomainCategory{
	DomainBuild, DomainRun, DomainSecure, DomainData, DomainProduct, DomainStrategy,
}

// IsKnown reports whether the category is part of the fixed enumerated set
func (d DomainCategory) IsKnown() bool {
	for _, known := range KnownDomains {
		if d == known {
			return true
		}
	}
	return false
}

// RoleTier is the coarse expertise tier used by L1/L2 worksheet weighting
type RoleTier string

const (
	TierHigh   RoleTier = "high"
	TierMedium RoleTier = "medium"
	TierLow    RoleTier = "low"
)

// TierWeight returns the published constant weight for a role tier
func (t RoleTier) TierWeight() (float64, error) {
	switch t {
	case TierHigh:
		return 3, nil
	case TierMedium:
		return 2, nil
	case TierLow:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown role tier %q", t)
	}
}

// Expert is one committee member. Immutable per review.
// INVARIANTS:
// - DomainWeight in [0,1]
// - DomainCategory drawn from the fixed enumerated set
type Expert struct {
	ID           core.ExpertID  `json:"id" db:"id"`
	Domain       DomainCategory `json:"domain_category" db:"domain_category"`
	DomainWeight float64        `json:"domain_weight" db:"domain_weight"`
	Tier         RoleTier       `json:"role_tier,omitempty" db:"role_tier"`
}

// NewExpert creates an expert with validation
func NewExpert(id core.ExpertID, domain DomainCategory, domainWeight float64, tier RoleTier) (Expert, error) {
	if id.String() == "" {
		return Expert{}, fmt.Errorf("expert ID cannot be empty")
	}
	if !domain.IsKnown() {
		return Expert{}, core.NewUnknownDomainError(string(domain))
	}
	if domainWeight < 0 || domainWeight > 1 {
		return Expert{}, fmt.Errorf("domain weight must be in [0,1], got %f", domainWeight)
	}
	return Expert{ID: id, Domain: domain, DomainWeight: domainWeight, Tier: tier}, nil
}

// ScoreEntry is one independent judgment: an expert scoring one quality angle.
// RawScore is an integer on the 1-5 scale; anything else is a validation error.
type ScoreEntry struct {
	ExpertID core.ExpertID `json:"expert_id" db:"expert_id"`
	AngleID  core.AngleID  `json:"angle_id" db:"angle_id"`
	RawScore int           `json:"raw_score" db:"raw_score"`
}

// Validate checks the entry against the scoring scale
func (s ScoreEntry) Validate() error {
	if s.ExpertID.String() == "" {
		return fmt.Errorf("score entry missing expert ID")
	}
	if s.AngleID.String() == "" {
		return fmt.Errorf("score entry missing angle ID")
	}
	if s.RawScore < MinRawScore || s.RawScore > MaxRawScore {
		return core.NewScoreRangeError(s.ExpertID.String(), s.AngleID.String(), s.RawScore)
	}
	return nil
}

// Score scale bounds
const (
	MinRawScore = 1
	MaxRawScore = 5
	ScaleWidth  = float64(MaxRawScore - MinRawScore)
)

// CorrelationClass is the coarse label for how much reviewer judgments are
// expected to co-move, derived from domain composition of the committee.
type CorrelationClass string

const (
	CorrelationMixed        CorrelationClass = "mixed"
	CorrelationMajoritySame CorrelationClass = "majority-same"
	CorrelationAllSame      CorrelationClass = "all-same"
)

// IsKnown reports whether the label is one of the three published buckets
func (c CorrelationClass) IsKnown() bool {
	switch c {
	case CorrelationMixed, CorrelationMajoritySame, CorrelationAllSame:
		return true
	}
	return false
}

// DeriveCorrelationClass maps committee domain composition to a bucket:
// all experts in one domain -> all-same, a strict majority in one domain ->
// majority-same, anything else -> mixed.
func DeriveCorrelationClass(experts []Expert) CorrelationClass {
	if len(experts) == 0 {
		return CorrelationMixed
	}
	counts := make(map[DomainCategory]int)
	for _, e := range experts {
		counts[e.Domain]++
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	switch {
	case max == len(experts):
		return CorrelationAllSame
	case max*2 > len(experts):
		return CorrelationMajoritySame
	default:
		return CorrelationMixed
	}
}
