package fuzzy

import (
	"fmt"
	"math"
)

// Shape identifies the form of a membership function.
type Shape int

const (
	ShapeTriangular  Shape = iota + 1 // (a, b, c)
	ShapeTrapezoidal                  // (a, b, c, d)
	ShapeS                            // rising (a, b)
	ShapeZ                            // falling (a, b)
)

func (s Shape) String() string {
	switch s {
	case ShapeTriangular:
		return "triangular"
	case ShapeTrapezoidal:
		return "trapezoidal"
	case ShapeS:
		return "s-shaped"
	case ShapeZ:
		return "z-shaped"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

func (s Shape) arity() int {
	switch s {
	case ShapeTriangular:
		return 3
	case ShapeTrapezoidal:
		return 4
	case ShapeS, ShapeZ:
		return 2
	default:
		return 0
	}
}

// MembershipFunction maps a crisp value to a degree in [0,1].
// The zero value is invalid; use one of the constructors.
type MembershipFunction struct {
	Shape  Shape
	Params []float64
}

// Triangular rises over [a,b] and falls over [b,c].
func Triangular(a, b, c float64) MembershipFunction {
	return MembershipFunction{Shape: ShapeTriangular, Params: []float64{a, b, c}}
}

// Trapezoidal rises over [a,b], holds 1 over [b,c] and falls over [c,d].
func Trapezoidal(a, b, c, d float64) MembershipFunction {
	return MembershipFunction{Shape: ShapeTrapezoidal, Params: []float64{a, b, c, d}}
}

// SShaped is a smooth monotone transition from 0 at a to 1 at b.
func SShaped(a, b float64) MembershipFunction {
	return MembershipFunction{Shape: ShapeS, Params: []float64{a, b}}
}

// ZShaped is a smooth monotone transition from 1 at a to 0 at b.
func ZShaped(a, b float64) MembershipFunction {
	return MembershipFunction{Shape: ShapeZ, Params: []float64{a, b}}
}

// Validate reports whether the parameters are finite and ordered.
func (m MembershipFunction) Validate() error {
	want := m.Shape.arity()
	if want == 0 {
		return fmt.Errorf("%w: unknown %s", ErrInvalidShape, m.Shape)
	}
	if len(m.Params) != want {
		return fmt.Errorf("%w: %s needs %d parameters, got %d", ErrInvalidShape, m.Shape, want, len(m.Params))
	}
	for i, p := range m.Params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: %s parameter %d is not finite", ErrInvalidShape, m.Shape, i)
		}
		if i > 0 && m.Params[i-1] > p {
			return fmt.Errorf("%w: %s parameters must be non-decreasing, got %v", ErrInvalidShape, m.Shape, m.Params)
		}
	}
	return nil
}

// Degree evaluates the function at x. A zero-width segment behaves as a step.
func (m MembershipFunction) Degree(x float64) float64 {
	if math.IsNaN(x) || len(m.Params) != m.Shape.arity() {
		return 0
	}
	p := m.Params
	switch m.Shape {
	case ShapeTriangular:
		return clamp01(triangle(x, p[0], p[1], p[2]))
	case ShapeTrapezoidal:
		return clamp01(trapezoid(x, p[0], p[1], p[2], p[3]))
	case ShapeS:
		return clamp01(rising(x, p[0], p[1]))
	case ShapeZ:
		return clamp01(1 - rising(x, p[0], p[1]))
	}
	return 0
}

func (m MembershipFunction) String() string {
	return fmt.Sprintf("%s%v", m.Shape, m.Params)
}

func triangle(x, a, b, c float64) float64 {
	switch {
	case x == b:
		return 1
	case a < x && x < b:
		return (x - a) / (b - a)
	case b < x && x < c:
		return (c - x) / (c - b)
	}
	return 0
}

func trapezoid(x, a, b, c, d float64) float64 {
	switch {
	case b <= x && x <= c:
		return 1
	case a < x && x < b:
		return (x - a) / (b - a)
	case c < x && x < d:
		return (d - x) / (d - c)
	}
	return 0
}

// rising is the s-curve: two quadratic halves joined at the midpoint.
func rising(x, a, b float64) float64 {
	if x >= b {
		return 1
	}
	if x <= a {
		return 0
	}
	mid := (a + b) / 2
	if x <= mid {
		t := (x - a) / (b - a)
		return 2 * t * t
	}
	t := (x - b) / (b - a)
	return 1 - 2*t*t
}

func clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v > 0:
		return v
	}
	return 0
}
