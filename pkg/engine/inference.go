package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

// Activation is the firing strength of one rule for one input set.
type Activation struct {
	Rule     string  `json:"rule"`
	Strength float64 `json:"strength"`
}

// inference is the outcome of one pass through the pipeline, before
// defuzzification.
type inference struct {
	activations []Activation
	curves      map[string][]float64
}

// FiringStrength is the degree to which antecedent e holds for f.
func FiringStrength(e Expression, f Fuzzified) float64 {
	return e.Degree(f)
}

// Implicate clips mf at level over u and folds the result into agg with a
// pointwise maximum. agg must have one entry per sample point of u.
func Implicate(u fuzzy.Universe, mf fuzzy.MembershipFunction, level float64, agg []float64) {
	if level <= 0 {
		return
	}
	for i := range agg {
		agg[i] = math.Max(agg[i], math.Min(mf.Degree(u.At(i)), level))
	}
}

// Centroid is the center of gravity of a curve sampled on u:
//
//	sum(y_i * mu_i) / sum(mu_i)
//
// ok is false when the curve has no area, in which case the centroid does
// not exist.
func Centroid(u fuzzy.Universe, curve []float64) (value float64, ok bool) {
	if len(curve) != u.Len() {
		return 0, false
	}
	area := floats.Sum(curve)
	if !(area > 0) {
		return 0, false
	}
	return floats.Dot(u.Points(), curve) / area, true
}

// fuzzify maps every input to its term degrees. Callers guarantee inputs
// holds a value for every input variable.
func (rb *RuleBase) fuzzify(inputs map[string]float64) Fuzzified {
	f := make(Fuzzified, len(rb.inputs))
	for _, v := range rb.inputs {
		f[v.Name()] = v.Fuzzify(inputs[v.Name()])
	}
	return f
}

// infer runs fuzzification, rule evaluation, implication and aggregation.
// It does not touch any shared state.
func (rb *RuleBase) infer(inputs map[string]float64) inference {
	f := rb.fuzzify(inputs)

	res := inference{
		activations: make([]Activation, len(rb.rules)),
		curves:      make(map[string][]float64, len(rb.outputs)),
	}
	for _, v := range rb.outputs {
		res.curves[v.Name()] = make([]float64, v.Universe().Len())
	}

	for i, r := range rb.rules {
		s := FiringStrength(r.antecedent, f)
		res.activations[i] = Activation{Rule: r.name, Strength: s}
		if s == 0 {
			continue
		}
		for _, c := range r.consequents {
			v := rb.variables[c.Variable]
			term, _ := v.Term(c.Term)
			Implicate(v.Universe(), term.MF, s*c.Weight, res.curves[c.Variable])
		}
	}
	return res
}

// defuzzify computes the centroid of every output, in registration order.
// Outputs with an empty aggregate are returned in undefined.
func (rb *RuleBase) defuzzify(curves map[string][]float64) (values map[string]float64, undefined []string) {
	values = make(map[string]float64, len(rb.outputs))
	for _, v := range rb.outputs {
		c, ok := Centroid(v.Universe(), curves[v.Name()])
		if !ok {
			undefined = append(undefined, v.Name())
			continue
		}
		values[v.Name()] = c
	}
	return values, undefined
}
