package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidGenome is matched by every genome validation failure.
var ErrInvalidGenome = errors.New("invalid genome")

// ErrInvalidRule is returned when a textual rule cannot be parsed.
var ErrInvalidRule = errors.New("invalid rule")

// ErrInvalidProbability is returned when a probability lies outside [0, 1].
var ErrInvalidProbability = errors.New("probability must be within [0, 1]")

// ErrGenomeNotFound is returned when a genome ID cannot be found in a store.
var ErrGenomeNotFound = errors.New("genome not found")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field  string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidGenome.
func (e *ValidationError) Unwrap() error { return ErrInvalidGenome }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
