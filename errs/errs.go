// Package errs implements the module's closed error taxonomy: NameError, TypeResolveError, RegisterError, TypeMismatch, ArityError and
// EvaluationError. Every package below program's builder and evaluator
// layers depends on errs rather than on each other's error types, so the
// taxonomy can be shared across register, program, ops and exec without
// import cycles.
//
// These are deliberately plain Go struct types satisfying error, not a
// generic wrapping library: callers are expected to discriminate on *kind*
// (via errors.As), and a wrapping library buys nothing over the stdlib
// errors package for a closed, small taxonomy like this one. See
// DESIGN.md for the fuller justification.
package errs

import "fmt"

// NameError reports a name that is reused, reserved, or undefined.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("name error: %q: %s", e.Name, e.Reason)
}

// NewNameError constructs a NameError.
func NewNameError(name, reason string) *NameError {
	return &NameError{Name: name, Reason: reason}
}

// TypeResolveError reports an interface/record reference unknown at its
// declaration site.
type TypeResolveError struct {
	Reference string
	Reason    string
}

func (e *TypeResolveError) Error() string {
	return fmt.Sprintf("type resolve error: %q: %s", e.Reference, e.Reason)
}

// NewTypeResolveError constructs a TypeResolveError.
func NewTypeResolveError(reference, reason string) *TypeResolveError {
	return &TypeResolveError{Reference: reference, Reason: reason}
}

// RegisterError reports an out-of-order locator, a double assignment, a
// member used as a destination, or an undefined projection.
type RegisterError struct {
	Register string
	Reason   string
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("register error: %s: %s", e.Register, e.Reason)
}

// NewRegisterError constructs a RegisterError.
func NewRegisterError(register, reason string) *RegisterError {
	return &RegisterError{Register: register, Reason: reason}
}

// TypeMismatch reports that operand/destination/output types do not align.
type TypeMismatch struct {
	Expected string
	Actual   string
	Context  string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch in %s: expected %s, got %s", e.Context, e.Expected, e.Actual)
}

// NewTypeMismatch constructs a TypeMismatch.
func NewTypeMismatch(context, expected, actual string) *TypeMismatch {
	return &TypeMismatch{Context: context, Expected: expected, Actual: actual}
}

// ArityError reports an input count disagreeing with a declaration.
type ArityError struct {
	Context  string
	Expected int
	Actual   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("arity error in %s: expected %d, got %d", e.Context, e.Expected, e.Actual)
}

// NewArityError constructs an ArityError.
func NewArityError(context string, expected, actual int) *ArityError {
	return &ArityError{Context: context, Expected: expected, Actual: actual}
}

// EvaluationError reports a runtime value shape disagreeing with its
// declared type.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error: %s", e.Reason)
}

// NewEvaluationError constructs an EvaluationError.
func NewEvaluationError(reason string) *EvaluationError {
	return &EvaluationError{Reason: reason}
}
