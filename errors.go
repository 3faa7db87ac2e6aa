package guard

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var (
	// ErrMalformedGuard is returned by the async evaluator when a guard is
	// neither a literal, a predicate, an alternation, a shape, nor a pending
	// value.
	ErrMalformedGuard = errors.New("malformed guard")

	// ErrAssertion is returned by the function built with AssertValid when
	// the subject does not satisfy the guard.
	ErrAssertion = errors.New("assertion failed")
)

// MalformedGuardError identifies the offending guard's runtime type.
type MalformedGuardError struct {
	Type string
}

func (e *MalformedGuardError) Error() string {
	return fmt.Sprintf("unimplemented guard %q", e.Type)
}

func (e *MalformedGuardError) Unwrap() error { return ErrMalformedGuard }

// AssertionError carries the serialized subject that failed an assertion.
type AssertionError struct {
	Subject string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("target %s does not match guard", e.Subject)
}

func (e *AssertionError) Unwrap() error { return ErrAssertion }

// AssertValid returns a function that reports an *AssertionError when its
// argument does not satisfy g. Use it for precondition checks:
//
//	requireUser := guard.AssertValid(guard.Shape{"id": p.String.UUID})
//	if err := requireUser(payload); err != nil {
//	    return err
//	}
func AssertValid(g any) func(subject any) error {
	validator := Validate(g)
	return func(subject any) error {
		if validator(subject) {
			return nil
		}
		return &AssertionError{Subject: serialize(subject)}
	}
}

func serialize(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
