package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConstruction marks a rule base that references something undefined.
	ErrConstruction = errors.New("invalid rule base")

	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownTerm     = errors.New("unknown term")

	// ErrMissingInput is returned by Compute before every input is set.
	ErrMissingInput = errors.New("missing input")

	// ErrUndefinedOutput is returned when no rule activates an output, so
	// its centroid does not exist.
	ErrUndefinedOutput = errors.New("undefined output")

	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidState is returned when outputs are read before a successful
	// Compute, or after an input changed.
	ErrInvalidState = errors.New("invalid state")
)

// ConstructionError describes a rule that cannot be registered.
type ConstructionError struct {
	Rule     string
	Variable string
	Term     string
	Err      error
}

func (e *ConstructionError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConstruction.Error())
	if e.Rule != "" {
		fmt.Fprintf(&b, ": rule %q", e.Rule)
	}
	if e.Variable != "" {
		fmt.Fprintf(&b, ": variable %q", e.Variable)
	}
	if e.Term != "" {
		fmt.Fprintf(&b, ": term %q", e.Term)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// MissingInputError lists the inputs that still have no value.
type MissingInputError struct {
	Variables []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingInput, strings.Join(e.Variables, ", "))
}

func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// UndefinedOutputError lists the outputs whose aggregate was identically zero.
type UndefinedOutputError struct {
	Variables []string
}

func (e *UndefinedOutputError) Error() string {
	return fmt.Sprintf("%v: no rule fired for %s", ErrUndefinedOutput, strings.Join(e.Variables, ", "))
}

func (e *UndefinedOutputError) Is(target error) bool { return target == ErrUndefinedOutput }

// InvalidValueError rejects a non-finite crisp input.
type InvalidValueError struct {
	Variable string
	Value    float64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%v: %s = %v", ErrInvalidValue, e.Variable, e.Value)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }
