package engine

import (
	"fmt"
	"log/slog"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

type role int

const (
	roleInput role = iota + 1
	roleOutput
)

// RuleBase is the immutable registry of input and output variables plus an
// ordered list of rules over them.
//
// # Thread Safety
//
// Safe for concurrent use; it is never mutated after NewRuleBase returns.
// Many Simulations may share one RuleBase.
type RuleBase struct {
	inputs    []*fuzzy.Variable
	outputs   []*fuzzy.Variable
	variables map[string]*fuzzy.Variable
	roles     map[string]role
	rules     []Rule

	// targets[i] lists the rules (by index) with a consequent on outputs[i].
	targets     [][]int
	unreachable []string
}

type options struct {
	logger *slog.Logger
}

// Option configures NewRuleBase.
type Option func(*options)

// WithLogger sets the logger used for construction warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRuleBase validates and registers variables and rules.
//
// Every term referenced by an antecedent must exist on an input variable and
// every consequent must name an existing output term. An output that no rule
// reaches is not an error: it is logged as a warning and reported by
// Unreachable, and Compute will report it as undefined.
func NewRuleBase(inputs, outputs []*fuzzy.Variable, rules []Rule, opts ...Option) (*RuleBase, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	rb := &RuleBase{
		variables: make(map[string]*fuzzy.Variable, len(inputs)+len(outputs)),
		roles:     make(map[string]role, len(inputs)+len(outputs)),
	}
	if len(inputs) == 0 {
		return nil, &ConstructionError{Err: fmt.Errorf("no input variables")}
	}
	if len(outputs) == 0 {
		return nil, &ConstructionError{Err: fmt.Errorf("no output variables")}
	}
	for _, v := range inputs {
		if err := rb.register(v, roleInput); err != nil {
			return nil, err
		}
		rb.inputs = append(rb.inputs, v)
	}
	for _, v := range outputs {
		if err := rb.register(v, roleOutput); err != nil {
			return nil, err
		}
		rb.outputs = append(rb.outputs, v)
	}

	outputIndex := make(map[string]int, len(rb.outputs))
	for i, v := range rb.outputs {
		outputIndex[v.Name()] = i
	}
	rb.targets = make([][]int, len(rb.outputs))

	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.name == "" {
			r.name = fmt.Sprintf("rule-%d", i+1)
		}
		if seen[r.name] {
			return nil, &ConstructionError{Rule: r.name, Err: fmt.Errorf("duplicate rule name")}
		}
		seen[r.name] = true

		if err := rb.validate(r); err != nil {
			return nil, err
		}
		r.consequents = append([]Consequent(nil), r.consequents...)
		rb.rules = append(rb.rules, r)

		marked := make(map[int]bool, len(r.consequents))
		for _, c := range r.consequents {
			oi := outputIndex[c.Variable]
			if !marked[oi] {
				marked[oi] = true
				rb.targets[oi] = append(rb.targets[oi], i)
			}
		}
	}

	for i, v := range rb.outputs {
		if len(rb.targets[i]) == 0 {
			rb.unreachable = append(rb.unreachable, v.Name())
			o.logger.Warn("output variable is not reached by any rule",
				"variable", v.Name(), "rules", len(rb.rules))
		}
	}

	o.logger.Debug("rule base constructed",
		"inputs", len(rb.inputs), "outputs", len(rb.outputs), "rules", len(rb.rules))
	return rb, nil
}

func (rb *RuleBase) register(v *fuzzy.Variable, ro role) error {
	if v == nil {
		return &ConstructionError{Err: fmt.Errorf("nil variable")}
	}
	if _, dup := rb.variables[v.Name()]; dup {
		return &ConstructionError{Variable: v.Name(), Err: fmt.Errorf("variable registered twice")}
	}
	rb.variables[v.Name()] = v
	rb.roles[v.Name()] = ro
	return nil
}

func (rb *RuleBase) validate(r Rule) error {
	if hasNil(r.antecedent) {
		return &ConstructionError{Rule: r.name, Err: fmt.Errorf("missing antecedent")}
	}
	for _, ref := range r.antecedent.Refs() {
		if err := rb.checkRef(r.name, ref.Variable, ref.Term, roleInput); err != nil {
			return err
		}
	}

	if len(r.consequents) == 0 {
		return &ConstructionError{Rule: r.name, Err: fmt.Errorf("no consequents")}
	}
	for _, c := range r.consequents {
		if err := rb.checkRef(r.name, c.Variable, c.Term, roleOutput); err != nil {
			return err
		}
		if !(c.Weight > 0 && c.Weight <= 1) {
			return &ConstructionError{
				Rule: r.name, Variable: c.Variable, Term: c.Term,
				Err: fmt.Errorf("%w: weight %v outside (0,1]", ErrInvalidValue, c.Weight),
			}
		}
	}
	return nil
}

func (rb *RuleBase) checkRef(rule, variable, term string, want role) error {
	v, ok := rb.variables[variable]
	if !ok {
		return &ConstructionError{Rule: rule, Variable: variable, Err: ErrUnknownVariable}
	}
	if rb.roles[variable] != want {
		side := "antecedent"
		if want == roleOutput {
			side = "consequent"
		}
		return &ConstructionError{Rule: rule, Variable: variable,
			Err: fmt.Errorf("%w: not usable in a %s", ErrUnknownVariable, side)}
	}
	if !v.HasTerm(term) {
		return &ConstructionError{Rule: rule, Variable: variable, Term: term, Err: ErrUnknownTerm}
	}
	return nil
}

// Inputs returns the input variables in registration order.
func (rb *RuleBase) Inputs() []*fuzzy.Variable {
	return append([]*fuzzy.Variable(nil), rb.inputs...)
}

// Outputs returns the output variables in registration order.
func (rb *RuleBase) Outputs() []*fuzzy.Variable {
	return append([]*fuzzy.Variable(nil), rb.outputs...)
}

// Rules returns the rules in order.
func (rb *RuleBase) Rules() []Rule {
	return append([]Rule(nil), rb.rules...)
}

// Variable looks up an input or output variable by name.
func (rb *RuleBase) Variable(name string) (*fuzzy.Variable, bool) {
	v, ok := rb.variables[name]
	return v, ok
}

// IsInput reports whether name is a registered input variable.
func (rb *RuleBase) IsInput(name string) bool { return rb.roles[name] == roleInput }

// IsOutput reports whether name is a registered output variable.
func (rb *RuleBase) IsOutput(name string) bool { return rb.roles[name] == roleOutput }

// Unreachable lists outputs that no rule activates.
func (rb *RuleBase) Unreachable() []string {
	return append([]string(nil), rb.unreachable...)
}

// Curve samples variable[term] over the variable's universe. It is a
// read-only accessor for plotting and is not used by inference.
func (rb *RuleBase) Curve(variable, term string) ([]fuzzy.Point, error) {
	v, ok := rb.variables[variable]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, variable)
	}
	points, err := v.Curve(term)
	if err != nil {
		return nil, fmt.Errorf("%w: %s[%s]", ErrUnknownTerm, variable, term)
	}
	return points, nil
}
