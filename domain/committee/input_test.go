package committee

import (
	"errors"
	"strings"
	"testing"

	"gopanel/domain/core"
)

func validPair() ([]Expert, []ScoreEntry) {
	experts := []Expert{
		{ID: "eng", Domain: DomainBuild, DomainWeight: 0.9, Tier: TierHigh},
		{ID: "qa", Domain: DomainRun, DomainWeight: 0.7, Tier: TierMedium},
	}
	scores := []ScoreEntry{
		{ExpertID: "eng", AngleID: "correctness", RawScore: 5},
		{ExpertID: "qa", AngleID: "correctness", RawScore: 4},
	}
	return experts, scores
}

func TestReviewInput_Valid(t *testing.T) {
	experts, scores := validPair()
	in := &ReviewInput{Level: LevelL1, Experts: experts, Scores: scores}
	if err := in.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if n := in.DistinctExperts(); n != 2 {
		t.Errorf("DistinctExperts = %d, want 2", n)
	}
}

func TestReviewInput_SingleExpertRejected(t *testing.T) {
	experts, _ := validPair()
	in := &ReviewInput{
		Level:   LevelL1,
		Experts: experts[:1],
		Scores:  []ScoreEntry{{ExpertID: "eng", AngleID: "correctness", RawScore: 4}},
	}
	err := in.Validate()
	if !errors.Is(err, core.ErrTooFewExperts) {
		t.Fatalf("expected ErrTooFewExperts, got %v", err)
	}
}

func TestReviewInput_ScoreOutOfRange(t *testing.T) {
	experts, scores := validPair()
	scores[1].RawScore = 6
	in := &ReviewInput{Level: LevelL1, Experts: experts, Scores: scores}
	err := in.Validate()
	if !errors.Is(err, core.ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	// the offending entry must be identifiable from the error
	if got := err.Error(); !strings.Contains(got, "qa") || !strings.Contains(got, "6") {
		t.Errorf("error should identify the offending entry, got %q", got)
	}
}

func TestReviewInput_DuplicatePairRejected(t *testing.T) {
	experts, scores := validPair()
	scores = append(scores, ScoreEntry{ExpertID: "eng", AngleID: "correctness", RawScore: 3})
	in := &ReviewInput{Level: LevelL1, Experts: experts, Scores: scores}
	if err := in.Validate(); !errors.Is(err, core.ErrDuplicateScore) {
		t.Fatalf("expected ErrDuplicateScore, got %v", err)
	}
}

func TestReviewInput_UnknownLevel(t *testing.T) {
	experts, scores := validPair()
	in := &ReviewInput{Level: ReviewLevel("L9"), Experts: experts, Scores: scores}
	if err := in.Validate(); !errors.Is(err, core.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestReviewInput_UnknownDomain(t *testing.T) {
	experts, scores := validPair()
	experts[0].Domain = DomainCategory("wizardry")
	in := &ReviewInput{Level: LevelL1, Experts: experts, Scores: scores}
	if err := in.Validate(); !errors.Is(err, core.ErrUnknownDomain) {
		t.Fatalf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestReviewInput_ScoreFromUnlistedExpert(t *testing.T) {
	experts, scores := validPair()
	scores = append(scores, ScoreEntry{ExpertID: "ghost", AngleID: "security", RawScore: 3})
	in := &ReviewInput{Level: LevelL1, Experts: experts, Scores: scores}
	if err := in.Validate(); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestReviewInput_CommitteeSizeBounds(t *testing.T) {
	// L1 allows at most 3; a fourth scoring expert must be rejected
	experts := []Expert{
		{ID: "a", Domain: DomainBuild, DomainWeight: 0.5, Tier: TierHigh},
		{ID: "b", Domain: DomainRun, DomainWeight: 0.5, Tier: TierLow},
		{ID: "c", Domain: DomainData, DomainWeight: 0.5, Tier: TierLow},
		{ID: "d", Domain: DomainSecure, DomainWeight: 0.5, Tier: TierLow},
	}
	scores := make([]ScoreEntry, len(experts))
	for i, e := range experts {
		scores[i] = ScoreEntry{ExpertID: e.ID, AngleID: "a1", RawScore: 3}
	}
	in := &ReviewInput{Level: LevelL1, Experts: experts, Scores: scores}
	if err := in.Validate(); !errors.Is(err, core.ErrCommitteeTooLarge) {
		t.Fatalf("expected ErrCommitteeTooLarge, got %v", err)
	}
}

func TestLevelProfiles(t *testing.T) {
	for _, level := range []ReviewLevel{LevelL1, LevelL2, LevelL3, LevelL4, LevelL5} {
		p, err := level.Profile()
		if err != nil {
			t.Fatalf("Profile(%s): %v", level, err)
		}
		if p.MinExperts < 2 {
			t.Errorf("%s: minimum experts %d below hard floor 2", level, p.MinExperts)
		}
		if p.MaxExperts > 23 {
			t.Errorf("%s: maximum experts %d above documented cap 23", level, p.MaxExperts)
		}
	}
	if LevelL1.UsesBlendedWeights() || LevelL2.UsesBlendedWeights() {
		t.Error("L1/L2 must use role-tier weighting")
	}
	if !LevelL3.UsesBlendedWeights() || !LevelL5.UsesBlendedWeights() {
		t.Error("L3+ must use blended weighting")
	}
}

func TestDeriveCorrelationClass(t *testing.T) {
	mixed := []Expert{
		{ID: "a", Domain: DomainBuild}, {ID: "b", Domain: DomainRun},
		{ID: "c", Domain: DomainData}, {ID: "d", Domain: DomainSecure},
	}
	if got := DeriveCorrelationClass(mixed); got != CorrelationMixed {
		t.Errorf("mixed committee classified as %s", got)
	}

	majority := []Expert{
		{ID: "a", Domain: DomainBuild}, {ID: "b", Domain: DomainBuild},
		{ID: "c", Domain: DomainBuild}, {ID: "d", Domain: DomainSecure},
	}
	if got := DeriveCorrelationClass(majority); got != CorrelationMajoritySame {
		t.Errorf("majority committee classified as %s", got)
	}

	same := []Expert{{ID: "a", Domain: DomainBuild}, {ID: "b", Domain: DomainBuild}}
	if got := DeriveCorrelationClass(same); got != CorrelationAllSame {
		t.Errorf("uniform committee classified as %s", got)
	}
}

func TestTierWeights(t *testing.T) {
	cases := map[RoleTier]float64{TierHigh: 3, TierMedium: 2, TierLow: 1}
	for tier, want := range cases {
		got, err := tier.TierWeight()
		if err != nil || got != want {
			t.Errorf("TierWeight(%s) = (%f, %v), want %f", tier, got, err, want)
		}
	}
	if _, err := RoleTier("boss").TierWeight(); err == nil {
		t.Error("unknown tier should error")
	}
}
