package verdict

import (
	"testing"
)

func TestClassify_Rules(t *testing.T) {
	cases := []struct {
		name string
		in   Inputs
		want Verdict
	}{
		{"tight high interval", Inputs{EnhancedScore: 4.4, CILow: 3.9, CIHigh: 4.9}, StrongApprove},
		{"good score decent floor", Inputs{EnhancedScore: 3.55, CILow: 3.05, CIHigh: 4.05}, ConditionalApprove},
		{"ceiling below reject line", Inputs{EnhancedScore: 1.8, CILow: 1.2, CIHigh: 2.4}, StrongReject},
		{"interval too wide", Inputs{EnhancedScore: 3.0, CILow: 1.5, CIHigh: 4.5}, NeedMoreInfo},
		{"middling and narrow", Inputs{EnhancedScore: 2.96, CILow: 2.10, CIHigh: 3.81}, Revise},
		{"width exactly 2 is not too wide", Inputs{EnhancedScore: 3.1, CILow: 2.1, CIHigh: 4.1}, Revise},
		{"point interval at top", Inputs{EnhancedScore: 4.0, CILow: 4.0, CIHigh: 4.0}, StrongApprove},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Errorf("%s: Classify = %s, want %s", tc.name, got, tc.want)
		}
	}
}

// A case matching both the approve rule and the wide-interval rule must
// resolve to Strong Approve: earlier rules win.
func TestClassify_PrecedenceStrongApproveOverWide(t *testing.T) {
	in := Inputs{EnhancedScore: 4.7, CILow: 3.6, CIHigh: 5.9}
	if in.Width() <= 2.0 {
		t.Fatal("test case must trigger the wide-interval rule")
	}
	if got := Classify(in); got != StrongApprove {
		t.Errorf("Classify = %s, want StrongApprove by rule precedence", got)
	}
}

func TestRuleTrace(t *testing.T) {
	v, rule := RuleTrace(Inputs{EnhancedScore: 2.96, CILow: 2.10, CIHigh: 3.81})
	if v != Revise || rule != "fallthrough" {
		t.Errorf("RuleTrace = (%s, %q)", v, rule)
	}
}

func TestVerdict_Display(t *testing.T) {
	if StrongApprove.Display() != "Strong Approve" {
		t.Errorf("Display = %q", StrongApprove.Display())
	}
	if !ConditionalApprove.IsApproval() || Revise.IsApproval() {
		t.Error("IsApproval misclassifies")
	}
}
