package lookup

import (
	"math"
	"testing"

	"gopanel/domain/committee"
)

func TestShrinkage_Steps(t *testing.T) {
	cases := map[int]float64{
		2: 1.2, 3: 1.2,
		4: 0.9, 5: 0.9,
		6: 0.7, 9: 0.7,
		10: 0.6, 14: 0.6,
		15: 0.5, 23: 0.5, 100: 0.5,
	}
	for n, want := range cases {
		if got := Shrinkage(n); got != want {
			t.Errorf("Shrinkage(%d) = %f, want %f", n, got, want)
		}
	}
}

func TestBesselFactor_Steps(t *testing.T) {
	cases := map[int]float64{
		2: 1.3, 3: 1.3,
		4: 1.15, 5: 1.15,
		6: 1.10, 10: 1.10,
		11: 1.05, 23: 1.05,
	}
	for n, want := range cases {
		if got := BesselFactor(n); got != want {
			t.Errorf("BesselFactor(%d) = %f, want %f", n, got, want)
		}
	}
}

func TestBesselFactor_AlwaysAtLeastOne(t *testing.T) {
	for n := 2; n <= 50; n++ {
		if BesselFactor(n) < 1 {
			t.Errorf("BesselFactor(%d) = %f < 1", n, BesselFactor(n))
		}
	}
}

func TestTCritical_Steps(t *testing.T) {
	cases := map[int]float64{
		2: 4.0, 3: 4.0,
		4: 3.0, 5: 3.0,
		6: 2.4, 9: 2.4,
		10: 2.2, 14: 2.2,
		15: 2.1, 23: 2.1,
	}
	for n, want := range cases {
		if got := TCritical(n); got != want {
			t.Errorf("TCritical(%d) = %f, want %f", n, got, want)
		}
	}
}

// The published table is calibrated, not exact: for large committees it must
// track the true Student-t quantile closely, while for tiny committees it
// intentionally caps the df=1 blowup.
func TestExactTCritical_ReferenceCheck(t *testing.T) {
	for n := 15; n <= 25; n++ {
		exact := ExactTCritical(n)
		table := TCritical(n)
		if math.Abs(exact-table) > 0.05 {
			t.Errorf("n=%d: table %f deviates from exact %f by more than 0.05", n, table, exact)
		}
	}

	// df=1 two-sided 95% quantile is ~12.71; the table deliberately caps it
	if exact := ExactTCritical(2); exact < 12 || exact > 13 {
		t.Errorf("ExactTCritical(2) = %f, expected ~12.71", exact)
	}
	if TCritical(2) != 4.0 {
		t.Errorf("TCritical(2) = %f, calibration cap should be 4.0", TCritical(2))
	}
}

func TestSEMultiplier(t *testing.T) {
	cases := []struct {
		class committee.CorrelationClass
		want  float64
		known bool
	}{
		{committee.CorrelationMixed, 1.3, true},
		{committee.CorrelationMajoritySame, 1.7, true},
		{committee.CorrelationAllSame, 2.0, true},
		{committee.CorrelationClass("weird"), 1.3, false},
		{committee.CorrelationClass(""), 1.3, false},
	}
	for _, tc := range cases {
		got, known := SEMultiplier(tc.class)
		if got != tc.want || known != tc.known {
			t.Errorf("SEMultiplier(%q) = (%f, %v), want (%f, %v)", tc.class, got, known, tc.want, tc.known)
		}
	}
}

func TestRhoAdjustedMultiplier(t *testing.T) {
	// rho=0 means independent reviewers: no inflation
	if got := RhoAdjustedMultiplier(10, 0); got != 1 {
		t.Errorf("rho=0 should give multiplier 1, got %f", got)
	}
	// sqrt(1 + 7*0.075) for a mixed 8-expert committee
	want := math.Sqrt(1 + 7*0.075)
	if got := RhoAdjustedMultiplier(8, RhoEstimate(committee.CorrelationMixed)); math.Abs(got-want) > 1e-12 {
		t.Errorf("RhoAdjustedMultiplier(8, mixed) = %f, want %f", got, want)
	}
	// inflation grows with n
	if RhoAdjustedMultiplier(20, 0.2) <= RhoAdjustedMultiplier(5, 0.2) {
		t.Error("multiplier should grow with committee size at fixed rho")
	}
}
