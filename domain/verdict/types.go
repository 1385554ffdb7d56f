package verdict

// Verdict is the terminal decision for one aggregated review
type Verdict string

const (
	StrongApprove      Verdict = "strong_approve"
	ConditionalApprove Verdict = "conditional_approve"
	StrongReject       Verdict = "strong_reject"
	NeedMoreInfo       Verdict = "need_more_info"
	Revise             Verdict = "revise"
)

// String returns the string representation
func (v Verdict) String() string { return string(v) }

// Display returns the human-readable form used in rendered worksheets
func (v Verdict) Display() string {
	switch v {
	case StrongApprove:
		return "Strong Approve"
	case ConditionalApprove:
		return "Conditional Approve"
	case StrongReject:
		return "Strong Reject"
	case NeedMoreInfo:
		return "Need More Info"
	case Revise:
		return "Revise"
	default:
		return string(v)
	}
}

// IsApproval reports whether the verdict clears the proposal to proceed
func (v Verdict) IsApproval() bool {
	return v == StrongApprove || v == ConditionalApprove
}

// Inputs carries the four derived quantities the classifier reads
type Inputs struct {
	EnhancedScore float64 `json:"enhanced_score"`
	CILow         float64 `json:"ci_low"`
	CIHigh        float64 `json:"ci_high"`
	Sufficiency   float64 `json:"information_sufficiency"`
}

// Width returns the confidence interval width
func (in Inputs) Width() float64 { return in.CIHigh - in.CILow }
