package engine

import (
	"fmt"
	"math"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

// Fuzzified holds the fuzzification of every input: variable -> term -> degree.
type Fuzzified map[string]fuzzy.Degrees

// TermRef names one term of one variable.
type TermRef struct {
	Variable string
	Term     string
}

func (r TermRef) String() string { return r.Variable + "[" + r.Term + "]" }

// Expression is a rule antecedent. The concrete forms are built with Is,
// And, Or and Not.
type Expression interface {
	// Degree evaluates the expression against fuzzified inputs.
	Degree(f Fuzzified) float64

	// Refs reports every term the expression reads, left to right.
	Refs() []TermRef

	String() string
}

type termExpr struct{ ref TermRef }

type andExpr struct{ left, right Expression }

type orExpr struct{ left, right Expression }

type notExpr struct{ inner Expression }

// Is is the leaf "variable is term".
func Is(variable, term string) Expression {
	return termExpr{ref: TermRef{Variable: variable, Term: term}}
}

// And is the fuzzy conjunction (minimum). Extra operands fold to the left:
// And(a, b, c) == And(And(a, b), c).
func And(left, right Expression, more ...Expression) Expression {
	e := Expression(andExpr{left: left, right: right})
	for _, m := range more {
		e = andExpr{left: e, right: m}
	}
	return e
}

// Or is the fuzzy disjunction (maximum), folded like And.
func Or(left, right Expression, more ...Expression) Expression {
	e := Expression(orExpr{left: left, right: right})
	for _, m := range more {
		e = orExpr{left: e, right: m}
	}
	return e
}

// Not is the standard complement 1 - degree.
func Not(inner Expression) Expression {
	return notExpr{inner: inner}
}

// AnyOf is Or over a list; a single operand is returned as is.
func AnyOf(operands ...Expression) Expression {
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	}
	return Or(operands[0], operands[1], operands[2:]...)
}

// AllOf is And over a list; a single operand is returned as is.
func AllOf(operands ...Expression) Expression {
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	}
	return And(operands[0], operands[1], operands[2:]...)
}

func (e termExpr) Degree(f Fuzzified) float64 { return f[e.ref.Variable][e.ref.Term] }

func (e termExpr) Refs() []TermRef { return []TermRef{e.ref} }

func (e termExpr) String() string { return e.ref.Variable + " is " + e.ref.Term }

func (e andExpr) Degree(f Fuzzified) float64 {
	l, r := e.left.Degree(f), e.right.Degree(f)
	return math.Min(l, r)
}

func (e andExpr) Refs() []TermRef { return append(e.left.Refs(), e.right.Refs()...) }

func (e andExpr) String() string { return fmt.Sprintf("(%s AND %s)", e.left, e.right) }

func (e orExpr) Degree(f Fuzzified) float64 {
	l, r := e.left.Degree(f), e.right.Degree(f)
	return math.Max(l, r)
}

func (e orExpr) Refs() []TermRef { return append(e.left.Refs(), e.right.Refs()...) }

func (e orExpr) String() string { return fmt.Sprintf("(%s OR %s)", e.left, e.right) }

func (e notExpr) Degree(f Fuzzified) float64 { return 1 - e.inner.Degree(f) }

func (e notExpr) Refs() []TermRef { return e.inner.Refs() }

func (e notExpr) String() string { return fmt.Sprintf("NOT %s", e.inner) }

// hasNil reports whether any node of the tree is missing.
func hasNil(e Expression) bool {
	switch x := e.(type) {
	case nil:
		return true
	case andExpr:
		return hasNil(x.left) || hasNil(x.right)
	case orExpr:
		return hasNil(x.left) || hasNil(x.right)
	case notExpr:
		return hasNil(x.inner)
	}
	return false
}
