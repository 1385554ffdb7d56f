// Package aggregate implements the weighted multi-expert decision pipeline:
// weight resolution, weighted moments, shrinkage and confidence estimation,
// information sufficiency, and verdict classification. The whole pipeline is
// a pure function of its input set; it holds no mutable state and is safe to
// run from any number of goroutines.
package aggregate

import (
	"math"
	"sort"

	"gopanel/domain/committee"
	"gopanel/domain/core"
	"gopanel/domain/verdict"
	"gopanel/internal"
	"gopanel/internal/errors"
	"gopanel/internal/lookup"
)

// fingerprintInput hashes the complete input set plus the table version
func fingerprintInput(in *committee.ReviewInput) core.Fingerprint {
	return core.ComputeFingerprint(lookup.TableVersion, in.FingerprintParts())
}

// dissentFloor keeps small committees from flagging ordinary disagreement:
// a deviation must exceed both 1.5 corrected sigmas and one full scale point.
const (
	dissentSigmas = 1.5
	dissentFloor  = 1.0
)

// Engine runs the aggregation pipeline
type Engine struct {
	log *internal.Logger
}

// NewEngine creates an engine with the given logger
func NewEngine(log *internal.Logger) *Engine {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Engine{log: log}
}

// Aggregate validates the input set and computes the complete derived result.
// Callers get either a full Result or a single categorized error; there is no
// partial aggregation.
func (e *Engine) Aggregate(in *committee.ReviewInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, errors.Categorize(err)
	}

	weights, err := ResolveWeights(in)
	if err != nil {
		return nil, errors.Categorize(err)
	}

	// Canonical entry order: float summation is not associative, so sorting
	// here is what makes supply order irrelevant and reruns bit-identical.
	entries := make([]committee.ScoreEntry, len(in.Scores))
	copy(entries, in.Scores)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ExpertID != entries[j].ExpertID {
			return entries[i].ExpertID < entries[j].ExpertID
		}
		return entries[i].AngleID < entries[j].AngleID
	})

	pairs := make([]ScorePair, len(entries))
	for i, s := range entries {
		pairs[i] = ScorePair{
			ExpertID: s.ExpertID,
			Weight:   weights[s.ExpertID],
			Score:    float64(s.RawScore),
		}
	}

	n := in.DistinctExperts()
	moments, err := ComputeMoments(pairs, n)
	if err != nil {
		return nil, errors.Categorize(err)
	}

	diag, err := ComputeDiagnostics(entries)
	if err != nil {
		return nil, errors.Categorize(err)
	}

	var unc Uncertainty
	method := MethodTInterval
	if in.Level.UsesBlendedWeights() {
		unc = EstimateUncertainty(moments, n, in.Correlation)
		if unc.Defaulted {
			e.log.Warn("unknown correlation class %q, defaulting to mixed", in.Correlation)
		}
	} else {
		method = MethodRangeWorksheet
		unc = EstimateQuick(moments, diag.ScoreRange, n)
		unc.EffectiveClass = committee.CorrelationMixed
	}

	is := Sufficiency(unc.CI)
	v, rule := verdict.RuleTrace(verdict.Inputs{
		EnhancedScore: unc.EnhancedScore,
		CILow:         unc.CI.Low,
		CIHigh:        unc.CI.High,
		Sufficiency:   is,
	})

	result := &Result{
		N:                      n,
		Level:                  in.Level,
		Method:                 method,
		WeightedMean:           moments.WeightedMean,
		SigmaBiased:            moments.SigmaBiased,
		SigmaCorrected:         moments.SigmaCorrected,
		EnhancedScore:          unc.EnhancedScore,
		StandardError:          unc.StandardError,
		CI:                     unc.CI,
		InformationSufficiency: is,
		Verdict:                v,
		RuleFired:              rule,
		Correlation:            unc.EffectiveClass,
		CorrelationDefaulted:   unc.Defaulted,
		Dissents:               e.flagDissents(in, entries, moments),
		Diagnostics:            diag,
		TableVersion:           lookup.TableVersion,
		Fingerprint:            fingerprintInput(in),
	}
	return result, nil
}

// flagDissents lists experts whose mean score deviates from the committee
// mean by more than max(1.5 * sigma_corrected, 1.0) scale points.
func (e *Engine) flagDissents(in *committee.ReviewInput, entries []committee.ScoreEntry, m Moments) []Dissent {
	if m.SigmaCorrected == 0 {
		return nil
	}
	threshold := dissentSigmas * m.SigmaCorrected
	if threshold < dissentFloor {
		threshold = dissentFloor
	}

	means := ExpertMeans(entries)
	ids := make([]string, 0, len(means))
	for id := range means {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	var dissents []Dissent
	for _, raw := range ids {
		id := core.ExpertID(raw)
		mean := means[id]
		dev := mean - m.WeightedMean
		if math.Abs(dev) <= threshold {
			continue
		}
		d := Dissent{ExpertID: id, MeanScore: mean, Deviation: dev}
		if expert, ok := in.ExpertByID(id); ok {
			d.Domain = expert.Domain
		}
		dissents = append(dissents, d)
	}
	return dissents
}
