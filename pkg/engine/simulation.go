package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

// State is the lifecycle position of a Simulation.
type State int

const (
	StateUninitialized State = iota
	StateInputsSet
	StateComputed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInputsSet:
		return "inputs-set"
	case StateComputed:
		return "computed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Simulation is one engine instance over a shared RuleBase. It holds the
// current crisp inputs and, after Compute, the crisp outputs.
//
// Methods serialize on an internal mutex, but SetInput followed by Compute
// is not atomic: a diagnostic session should own its Simulation.
type Simulation struct {
	mu sync.Mutex
	rb *RuleBase

	state       State
	inputs      map[string]float64
	outputs     map[string]float64
	curves      map[string][]float64
	activations []Activation
}

// NewSimulation returns an empty engine instance.
func NewSimulation(rb *RuleBase) *Simulation {
	return &Simulation{
		rb:     rb,
		inputs: make(map[string]float64, len(rb.inputs)),
	}
}

// RuleBase returns the rule base the simulation evaluates.
func (s *Simulation) RuleBase() *RuleBase { return s.rb }

// State reports the current lifecycle state.
func (s *Simulation) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetInput assigns a crisp value to an input variable. Values outside the
// variable's universe are clamped; non-finite values are rejected. Any
// previously computed outputs become stale.
func (s *Simulation) SetInput(name string, value float64) error {
	clamped, err := s.check(name, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs[name] = clamped
	s.invalidate()
	return nil
}

// SetInputs assigns several inputs at once. Nothing is applied unless every
// entry is valid.
func (s *Simulation) SetInputs(values map[string]float64) error {
	clamped := make(map[string]float64, len(values))
	for name, value := range values {
		c, err := s.check(name, value)
		if err != nil {
			return err
		}
		clamped[name] = c
	}
	if len(clamped) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, c := range clamped {
		s.inputs[name] = c
	}
	s.invalidate()
	return nil
}

// Input returns the (clamped) value of an input, if set.
func (s *Simulation) Input(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.inputs[name]
	return v, ok
}

// Reset clears inputs and outputs.
func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = make(map[string]float64, len(s.rb.inputs))
	s.outputs, s.curves, s.activations = nil, nil, nil
	s.state = StateUninitialized
}

// Compute runs the whole pipeline. It fails with MissingInputError when an
// input has no value and with UndefinedOutputError when no rule activates
// an output. On failure the simulation is left exactly as it was.
func (s *Simulation) Compute() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	for _, v := range s.rb.inputs {
		if _, ok := s.inputs[v.Name()]; !ok {
			missing = append(missing, v.Name())
		}
	}
	if len(missing) > 0 {
		return &MissingInputError{Variables: missing}
	}

	res := s.rb.infer(s.inputs)
	values, undefined := s.rb.defuzzify(res.curves)
	if len(undefined) > 0 {
		return &UndefinedOutputError{Variables: undefined}
	}

	s.outputs = values
	s.curves = res.curves
	s.activations = res.activations
	s.state = StateComputed
	return nil
}

// Output returns the crisp value of an output variable. It is only valid
// after a successful Compute with no input changed since.
func (s *Simulation) Output(name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rb.IsOutput(name) {
		return 0, fmt.Errorf("%w: %s is not an output", ErrUnknownVariable, name)
	}
	if err := s.requireComputed(); err != nil {
		return 0, err
	}
	return s.outputs[name], nil
}

// Outputs returns a copy of every crisp output.
func (s *Simulation) Outputs() (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireComputed(); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(s.outputs))
	for k, v := range s.outputs {
		out[k] = v
	}
	return out, nil
}

// AggregatedCurve returns the aggregated membership curve of an output from
// the last Compute, for visualization.
func (s *Simulation) AggregatedCurve(name string) ([]fuzzy.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rb.variables[name]
	if !ok || !s.rb.IsOutput(name) {
		return nil, fmt.Errorf("%w: %s is not an output", ErrUnknownVariable, name)
	}
	if err := s.requireComputed(); err != nil {
		return nil, err
	}
	curve := s.curves[name]
	u := v.Universe()
	points := make([]fuzzy.Point, len(curve))
	for i, mu := range curve {
		points[i] = fuzzy.Point{X: u.At(i), Degree: mu}
	}
	return points, nil
}

// Activations returns the firing strength of every rule from the last
// Compute, in rule order.
func (s *Simulation) Activations() ([]Activation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireComputed(); err != nil {
		return nil, err
	}
	return append([]Activation(nil), s.activations...), nil
}

// snapshot returns the outputs and activations of the same Compute.
func (s *Simulation) snapshot() (map[string]float64, []Activation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireComputed(); err != nil {
		return nil, nil, err
	}
	outputs := make(map[string]float64, len(s.outputs))
	for k, v := range s.outputs {
		outputs[k] = v
	}
	return outputs, append([]Activation(nil), s.activations...), nil
}

func (s *Simulation) check(name string, value float64) (float64, error) {
	if !s.rb.IsInput(name) {
		return 0, fmt.Errorf("%w: %s is not an input", ErrUnknownVariable, name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &InvalidValueError{Variable: name, Value: value}
	}
	return s.rb.variables[name].Universe().Clamp(value), nil
}

// invalidate drops stale outputs; callers hold s.mu.
func (s *Simulation) invalidate() {
	s.outputs, s.curves, s.activations = nil, nil, nil
	s.state = StateInputsSet
}

func (s *Simulation) requireComputed() error {
	if s.state != StateComputed {
		return fmt.Errorf("%w: outputs read in state %s", ErrInvalidState, s.state)
	}
	return nil
}
