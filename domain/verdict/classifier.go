package verdict

// Decision thresholds on the 1-5 scoring scale
const (
	strongApproveFloor = 3.5 // CI floor for an unconditional approve
	conditionalFloor   = 2.5 // CI floor for a conditional approve
	rejectCeiling      = 2.5 // CI ceiling for an unconditional reject
	widthLimit         = 2.0 // CI width beyond which more reviewers are needed
)

// Classify maps derived review statistics to one of five verdicts.
// Rules are evaluated in order and the first match wins; a result that
// satisfies both the approve rule and the wide-interval rule resolves to
// Strong Approve. The ordering is intentional, not incidental.
func Classify(in Inputs) Verdict {
	switch {
	case in.CILow > strongApproveFloor:
		return StrongApprove
	case in.EnhancedScore > strongApproveFloor && in.CILow > conditionalFloor:
		return ConditionalApprove
	case in.CIHigh < rejectCeiling:
		return StrongReject
	case in.Width() > widthLimit:
		return NeedMoreInfo
	default:
		return Revise
	}
}

// RuleTrace names the rule that fired, in precedence order, for audit output
func RuleTrace(in Inputs) (Verdict, string) {
	v := Classify(in)
	switch v {
	case StrongApprove:
		return v, "ci_low > 3.5"
	case ConditionalApprove:
		return v, "enhanced > 3.5 and ci_low > 2.5"
	case StrongReject:
		return v, "ci_high < 2.5"
	case NeedMoreInfo:
		return v, "ci_width > 2.0"
	default:
		return v, "fallthrough"
	}
}
