package engine

import "fmt"

// Consequent is one output term a rule activates, scaled by Weight.
type Consequent struct {
	Variable string
	Term     string
	Weight   float64
}

// Then activates variable[term] with weight 1.
func Then(variable, term string) Consequent {
	return Consequent{Variable: variable, Term: term, Weight: 1}
}

// Weighted returns a copy of c with the given weight, which must lie in (0,1].
func (c Consequent) Weighted(w float64) Consequent {
	c.Weight = w
	return c
}

func (c Consequent) String() string {
	if c.Weight == 1 {
		return c.Variable + " is " + c.Term
	}
	return fmt.Sprintf("%s is %s (weight %g)", c.Variable, c.Term, c.Weight)
}

// Rule is one linguistic rule: IF antecedent THEN consequents.
// Rules are values; build them with NewRule.
type Rule struct {
	name        string
	antecedent  Expression
	consequents []Consequent
}

// NewRule builds a rule. Validation happens when the rule is registered in a
// RuleBase.
func NewRule(name string, antecedent Expression, consequents ...Consequent) Rule {
	cs := make([]Consequent, len(consequents))
	copy(cs, consequents)
	return Rule{name: name, antecedent: antecedent, consequents: cs}
}

// ID returns the rule name.
func (r Rule) ID() string { return r.name }

func (r Rule) Antecedent() Expression { return r.antecedent }

// Consequents returns a copy of the rule's consequents.
func (r Rule) Consequents() []Consequent {
	cs := make([]Consequent, len(r.consequents))
	copy(cs, r.consequents)
	return cs
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: IF %v THEN %v", r.name, r.antecedent, r.consequents)
}
