package fuzzy

import (
	"fmt"
	"math"
)

// Term is a named fuzzy category of a variable.
type Term struct {
	Name string
	MF   MembershipFunction
}

// Point is one sample of a curve.
type Point struct {
	X      float64 `json:"x"`
	Degree float64 `json:"degree"`
}

// Degrees maps term name to membership degree.
type Degrees map[string]float64

// Variable is a linguistic variable: a named universe with ordered terms.
// It is immutable after construction and safe for concurrent reads.
type Variable struct {
	name     string
	universe Universe
	terms    []Term
	index    map[string]int
}

// NewVariable validates the universe and every term. Term names must be
// unique within the variable.
func NewVariable(name string, universe Universe, terms ...Term) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	if !universe.valid() {
		return nil, fmt.Errorf("%w: %s has no universe", ErrInvalidVariable, name)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: %s has no terms", ErrInvalidVariable, name)
	}

	v := &Variable{
		name:     name,
		universe: universe,
		terms:    make([]Term, 0, len(terms)),
		index:    make(map[string]int, len(terms)),
	}
	for _, t := range terms {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: %s has a term with an empty name", ErrInvalidVariable, name)
		}
		if _, dup := v.index[t.Name]; dup {
			return nil, fmt.Errorf("%w: %s declares term %q twice", ErrInvalidVariable, name, t.Name)
		}
		if err := t.MF.Validate(); err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", name, t.Name, err)
		}
		params := make([]float64, len(t.MF.Params))
		copy(params, t.MF.Params)
		v.index[t.Name] = len(v.terms)
		v.terms = append(v.terms, Term{Name: t.Name, MF: MembershipFunction{Shape: t.MF.Shape, Params: params}})
	}
	return v, nil
}

// MustVariable is NewVariable for static tables; it panics on error.
func MustVariable(name string, universe Universe, terms ...Term) *Variable {
	v, err := NewVariable(name, universe, terms...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Variable) Name() string { return v.name }

func (v *Variable) Universe() Universe { return v.universe }

// TermNames returns the term names in declaration order.
func (v *Variable) TermNames() []string {
	names := make([]string, len(v.terms))
	for i, t := range v.terms {
		names[i] = t.Name
	}
	return names
}

// Term looks up a term by name.
func (v *Variable) Term(name string) (Term, bool) {
	i, ok := v.index[name]
	if !ok {
		return Term{}, false
	}
	return v.terms[i], true
}

func (v *Variable) HasTerm(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Fuzzify returns the degree of every term at x. Values outside the
// universe are clamped to its bounds.
func (v *Variable) Fuzzify(x float64) Degrees {
	x = v.clamp(x)
	out := make(Degrees, len(v.terms))
	for _, t := range v.terms {
		out[t.Name] = t.MF.Degree(x)
	}
	return out
}

// Dominant returns the term with the highest degree at x. Ties go to the
// term declared first.
func (v *Variable) Dominant(x float64) (string, float64) {
	x = v.clamp(x)
	best, bestDeg := v.terms[0].Name, v.terms[0].MF.Degree(x)
	for _, t := range v.terms[1:] {
		if d := t.MF.Degree(x); d > bestDeg {
			best, bestDeg = t.Name, d
		}
	}
	return best, bestDeg
}

// Curve samples a term over the universe.
func (v *Variable) Curve(term string) ([]Point, error) {
	t, ok := v.Term(term)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no term %q", ErrUnknownTerm, v.name, term)
	}
	points := make([]Point, v.universe.Len())
	for i := range points {
		x := v.universe.At(i)
		points[i] = Point{X: x, Degree: t.MF.Degree(x)}
	}
	return points, nil
}

func (v *Variable) clamp(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	return v.universe.Clamp(x)
}
