package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// EngineName identifies results produced by Analyze.
const EngineName = "fuzzy-centroid"

// Analyze runs one inference over inputs and ranks every output.
// It is a pure function that:
//   - Never mutates the rule base or the inputs
//   - Never performs I/O
//   - Produces deterministic, repeatable rankings
func Analyze(rb *RuleBase, inputs map[string]float64) (types.DiagnosisResult, error) {
	sim := NewSimulation(rb)
	if err := sim.SetInputs(inputs); err != nil {
		return types.DiagnosisResult{}, fmt.Errorf("set inputs: %w", err)
	}
	if err := sim.Compute(); err != nil {
		return types.DiagnosisResult{}, fmt.Errorf("compute: %w", err)
	}
	return Rank(sim)
}

// Rank turns the outputs of a computed simulation into hypotheses, highest
// risk first.
func Rank(sim *Simulation) (types.DiagnosisResult, error) {
	outputs, activations, err := sim.snapshot()
	if err != nil {
		return types.DiagnosisResult{}, err
	}
	rb := sim.RuleBase()

	hypotheses := make([]types.Hypothesis, 0, len(rb.outputs))
	for i, v := range rb.outputs {
		risk := outputs[v.Name()]
		level, degree := v.Dominant(risk)
		hypotheses = append(hypotheses, types.Hypothesis{
			Component:  v.Name(),
			Risk:       risk,
			Level:      level,
			Confidence: degree,
			Evidence:   rb.evidence(rb.targets[i], activations),
		})
	}

	// Sort by risk (descending); equal risks keep registration order.
	sort.SliceStable(hypotheses, func(i, j int) bool {
		return hypotheses[i].Risk > hypotheses[j].Risk
	})

	// Assign ranks after sorting
	for i := range hypotheses {
		hypotheses[i].Rank = i + 1
	}

	return types.DiagnosisResult{
		Hypotheses:  hypotheses,
		GeneratedAt: time.Now().UTC(),
		Engine:      EngineName,
	}, nil
}

// evidence describes the rules that fired for one output, strongest first.
func (rb *RuleBase) evidence(ruleIdx []int, activations []Activation) []string {
	fired := make([]int, 0, len(ruleIdx))
	for _, i := range ruleIdx {
		if activations[i].Strength > 0 {
			fired = append(fired, i)
		}
	}
	sort.SliceStable(fired, func(a, b int) bool {
		return activations[fired[a]].Strength > activations[fired[b]].Strength
	})

	var out []string
	for _, i := range fired {
		r := rb.rules[i]
		out = append(out, fmt.Sprintf("Rule %s fired at %.2f: IF %s", r.name, activations[i].Strength, r.antecedent))
	}
	return out
}
