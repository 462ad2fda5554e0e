package fuzzy

import "fmt"

// EvenTerms lays out len(names) triangular terms evenly over the universe.
//
// Centers are spaced evenly from Min to Max and every triangle has a
// half-width of (Max-Min)/(n-1), so neighbouring terms cross at 0.5 and the
// first and last terms peak exactly at the universe bounds. Their outer feet
// fall outside the universe.
//
// For n=5 over [0,100] the breakpoints are:
//
//	names[0]: (-25,   0,  25)
//	names[1]: (  0,  25,  50)
//	names[2]: ( 25,  50,  75)
//	names[3]: ( 50,  75, 100)
//	names[4]: ( 75, 100, 125)
func EvenTerms(u Universe, names ...string) ([]Term, error) {
	if !u.valid() {
		return nil, fmt.Errorf("%w: empty universe", ErrInvalidUniverse)
	}
	n := len(names)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two term names, got %d", ErrInvalidVariable, n)
	}
	lo, hi := u.Min(), u.Max()
	if !(hi > lo) {
		return nil, fmt.Errorf("%w: universe has a single point", ErrInvalidUniverse)
	}

	step := (hi - lo) / float64(n-1)
	terms := make([]Term, n)
	for i, name := range names {
		center := lo + float64(i)*step
		if i == n-1 {
			center = hi
		}
		terms[i] = Term{Name: name, MF: Triangular(center-step, center, center+step)}
	}
	return terms, nil
}
