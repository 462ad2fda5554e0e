package fuzzy

import "errors"

var (
	ErrInvalidShape    = errors.New("invalid membership function")
	ErrInvalidUniverse = errors.New("invalid universe")
	ErrInvalidVariable = errors.New("invalid linguistic variable")
	ErrUnknownTerm     = errors.New("unknown term")
)
