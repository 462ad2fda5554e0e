package fuzzy

import (
	"fmt"
	"math"
)

// Universe is the discretized domain of a variable: strictly increasing
// sample points shared by every term of the variable.
type Universe struct {
	points []float64
}

// NewUniverse builds a universe from explicit sample points.
func NewUniverse(points ...float64) (Universe, error) {
	if len(points) == 0 {
		return Universe{}, fmt.Errorf("%w: no sample points", ErrInvalidUniverse)
	}
	for i, p := range points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Universe{}, fmt.Errorf("%w: point %d is not finite", ErrInvalidUniverse, i)
		}
		if i > 0 && points[i-1] >= p {
			return Universe{}, fmt.Errorf("%w: points must be strictly increasing (index %d)", ErrInvalidUniverse, i)
		}
	}
	out := make([]float64, len(points))
	copy(out, points)
	return Universe{points: out}, nil
}

// Span builds the universe min, min+step, ... up to and including max.
func Span(min, max, step float64) (Universe, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return Universe{}, fmt.Errorf("%w: step must be positive, got %v", ErrInvalidUniverse, step)
	}
	if !(max > min) {
		return Universe{}, fmt.Errorf("%w: empty span [%v, %v]", ErrInvalidUniverse, min, max)
	}
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	points := make([]float64, n)
	for i := range points {
		points[i] = min + float64(i)*step
	}
	return NewUniverse(points...)
}

// MustSpan is Span for static tables; it panics on invalid arguments.
func MustSpan(min, max, step float64) Universe {
	u, err := Span(min, max, step)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Universe) Len() int { return len(u.points) }

func (u Universe) At(i int) float64 { return u.points[i] }

func (u Universe) Min() float64 { return u.points[0] }

func (u Universe) Max() float64 { return u.points[len(u.points)-1] }

// Points returns a copy of the sample points.
func (u Universe) Points() []float64 {
	out := make([]float64, len(u.points))
	copy(out, u.points)
	return out
}

// Clamp pulls x into [Min, Max].
func (u Universe) Clamp(x float64) float64 {
	return math.Max(u.Min(), math.Min(u.Max(), x))
}

func (u Universe) valid() bool { return len(u.points) > 0 }
