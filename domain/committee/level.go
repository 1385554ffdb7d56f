package committee

import (
	"fmt"

	"gopanel/domain/core"
)

// ReviewLevel is the rigor tier fixed at review creation. It determines
// committee size bounds, the applicable angle set size, and the weight
// multiplier applied to blended weights.
type ReviewLevel string

const (
	LevelL1 ReviewLevel = "L1"
	LevelL2 ReviewLevel = "L2"
	LevelL3 ReviewLevel = "L3"
	LevelL4 ReviewLevel = "L4"
	LevelL5 ReviewLevel = "L5"
)

// LevelProfile captures everything a review level fixes about a committee
type LevelProfile struct {
	Level      ReviewLevel `json:"level"`
	MinExperts int         `json:"min_experts"`
	MaxExperts int         `json:"max_experts"`
	AngleCount int         `json:"angle_count"`
	Multiplier float64     `json:"weight_multiplier"`
}

// levelProfiles is the published calibration. L1/L2 use role-tier weighting,
// L3+ use the blended domain/angle formula (see UsesBlendedWeights).
var levelProfiles = map[ReviewLevel]LevelProfile{
	LevelL1: {Level: LevelL1, MinExperts: 2, MaxExperts: 3, AngleCount: 2, Multiplier: 1.00},
	LevelL2: {Level: LevelL2, MinExperts: 3, MaxExperts: 5, AngleCount: 3, Multiplier: 1.00},
	LevelL3: {Level: LevelL3, MinExperts: 5, MaxExperts: 9, AngleCount: 4, Multiplier: 1.05},
	LevelL4: {Level: LevelL4, MinExperts: 7, MaxExperts: 15, AngleCount: 5, Multiplier: 1.10},
	LevelL5: {Level: LevelL5, MinExperts: 9, MaxExperts: 23, AngleCount: 6, Multiplier: 1.15},
}

// Profile returns the level's profile, or an error for an unknown level
func (l ReviewLevel) Profile() (LevelProfile, error) {
	p, ok := levelProfiles[l]
	if !ok {
		return LevelProfile{}, fmt.Errorf("%w: %q", core.ErrUnknownLevel, l)
	}
	return p, nil
}

// IsKnown reports whether the level is one of L1..L5
func (l ReviewLevel) IsKnown() bool {
	_, ok := levelProfiles[l]
	return ok
}

// UsesBlendedWeights reports whether this level uses the domain/angle blend.
// L1 and L2 use the simple role-tier worksheet weighting instead.
func (l ReviewLevel) UsesBlendedWeights() bool {
	return l == LevelL3 || l == LevelL4 || l == LevelL5
}

// ParseReviewLevel parses a string into a ReviewLevel
func ParseReviewLevel(s string) (ReviewLevel, error) {
	l := ReviewLevel(s)
	if !l.IsKnown() {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownLevel, s)
	}
	return l, nil
}
