package diagnosis

import (
	"time"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// Report is the outcome of one diagnosis.
type Report struct {
	Session string       `json:"session" yaml:"session"`
	Device  types.Device `json:"device" yaml:"device"`

	// Inputs are the values the engine ran on, stubs included.
	Inputs map[string]float64 `json:"inputs" yaml:"inputs"`

	Verdict types.Verdict `json:"verdict" yaml:"verdict"`

	// Cause is the top ranked component when Verdict is fault.
	Cause      string  `json:"cause,omitempty" yaml:"cause,omitempty"`
	CauseLabel string  `json:"causeLabel,omitempty" yaml:"cause_label,omitempty"`
	MaxRisk    float64 `json:"maxRisk" yaml:"max_risk"`

	// Risks holds the device's relevant outputs, highest first.
	Risks []types.Hypothesis `json:"risks" yaml:"risks"`

	GeneratedAt time.Time `json:"generatedAt" yaml:"generated_at"`
	Engine      string    `json:"engine" yaml:"engine"`
	Cached      bool      `json:"cached" yaml:"cached"`
}

// clone returns a copy that shares no maps or slices with r.
func (r Report) clone() Report {
	out := r
	out.Inputs = make(map[string]float64, len(r.Inputs))
	for k, v := range r.Inputs {
		out.Inputs[k] = v
	}
	out.Risks = make([]types.Hypothesis, len(r.Risks))
	for i, h := range r.Risks {
		h.Evidence = append([]string(nil), h.Evidence...)
		out.Risks[i] = h
	}
	return out
}

// buildReport keeps the hypotheses relevant to the device, renumbers them
// and applies the thresholds.
func buildReport(device types.Device, relevant func(string) bool, label func(string) string,
	inputs map[string]float64, result types.DiagnosisResult, th types.Thresholds) Report {

	r := Report{
		Device:      device,
		Inputs:      inputs,
		GeneratedAt: result.GeneratedAt,
		Engine:      result.Engine,
	}
	for _, h := range result.Hypotheses {
		if !relevant(h.Component) {
			continue
		}
		h.Rank = len(r.Risks) + 1
		h.Band = th.Band(h.Risk)
		r.Risks = append(r.Risks, h)
	}

	if len(r.Risks) > 0 {
		r.MaxRisk = r.Risks[0].Risk
	}
	r.Verdict = th.Verdict(r.MaxRisk)
	if r.Verdict == types.VerdictFault && len(r.Risks) > 0 {
		r.Cause = r.Risks[0].Component
		r.CauseLabel = label(r.Cause)
	}
	return r
}
