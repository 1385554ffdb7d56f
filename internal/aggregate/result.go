package aggregate

import (
	"gopanel/domain/committee"
	"gopanel/domain/core"
	"gopanel/domain/verdict"
)

// Method names which estimation path produced a result
type Method string

const (
	MethodRangeWorksheet Method = "range_worksheet" // L1/L2 quick path
	MethodTInterval      Method = "t_interval"      // L3+ full statistical path
)

// Dissent flags one expert whose judgment sits far from the committee mean.
// Flagging is structural only; no prose is generated for it.
type Dissent struct {
	ExpertID  core.ExpertID            `json:"expert_id"`
	Domain    committee.DomainCategory `json:"domain_category"`
	MeanScore float64                  `json:"mean_score"`
	Deviation float64                  `json:"deviation"`
}

// Result is the complete derived output of one aggregation. It is a pure
// function of the ReviewInput and the table version: identical inputs yield
// a bit-identical Result, which is why it carries no wall-clock field.
type Result struct {
	N                      int                        `json:"n"`
	Level                  committee.ReviewLevel      `json:"review_level"`
	Method                 Method                     `json:"method"`
	WeightedMean           float64                    `json:"weighted_mean"`
	SigmaBiased            float64                    `json:"sigma_biased"`
	SigmaCorrected         float64                    `json:"sigma_corrected"`
	EnhancedScore          float64                    `json:"enhanced_score"`
	StandardError          float64                    `json:"standard_error"`
	CI                     Interval                   `json:"confidence_interval"`
	InformationSufficiency float64                    `json:"information_sufficiency"`
	Verdict                verdict.Verdict            `json:"verdict"`
	RuleFired              string                     `json:"rule_fired"`
	Correlation            committee.CorrelationClass `json:"correlation_class"`
	CorrelationDefaulted   bool                       `json:"correlation_defaulted,omitempty"`
	Dissents               []Dissent                  `json:"dissents,omitempty"`
	Diagnostics            Diagnostics                `json:"diagnostics"`
	TableVersion           string                     `json:"table_version"`
	Fingerprint            core.Fingerprint           `json:"fingerprint"`
}
