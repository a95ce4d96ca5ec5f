package arith

import (
	"errors"
	"fmt"

	"github.com/sonphnt/mathjs/internal/value"
)

// ErrorCode categorizes function errors.
type ErrorCode string

const (
	// ErrCodeArity indicates a call with the wrong number of arguments.
	ErrCodeArity ErrorCode = "ARITY"

	// ErrCodeUnsupportedType indicates an argument of a type the function
	// does not accept.
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
)

// ArityError is returned when a function receives the wrong number of
// arguments.
type ArityError struct {
	// Fn is the function name.
	Fn string

	// Count is the number of arguments received.
	Count int

	// Expected is the minimum number of arguments accepted.
	Expected int

	// Max is the maximum number of arguments accepted. Zero means the
	// function takes exactly Expected arguments.
	Max int
}

// NewArityError creates an ArityError for a function taking exactly expected
// arguments.
func NewArityError(fn string, count, expected int) *ArityError {
	return &ArityError{Fn: fn, Count: count, Expected: expected}
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	want := fmt.Sprintf("%d", e.Expected)
	if e.Max > e.Expected {
		want = fmt.Sprintf("%d-%d", e.Expected, e.Max)
	}
	return fmt.Sprintf("Wrong number of arguments in function %s (%d provided, %s expected)", e.Fn, e.Count, want)
}

// Code returns ErrCodeArity.
func (e *ArityError) Code() ErrorCode { return ErrCodeArity }

// UnsupportedTypeError is returned when an argument's variant is not one
// the function accepts.
type UnsupportedTypeError struct {
	// Fn is the function name.
	Fn string

	// Kind is the classified variant of the offending argument.
	Kind value.Kind

	// Type is the argument's type name ("string", "null", ...).
	Type string
}

// NewUnsupportedTypeError creates an UnsupportedTypeError describing v.
func NewUnsupportedTypeError(fn string, v value.Value) *UnsupportedTypeError {
	return &UnsupportedTypeError{
		Fn:   fn,
		Kind: value.Classify(v),
		Type: value.TypeOf(v),
	}
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Function %s(%s) not supported", e.Fn, e.Type)
}

// Code returns ErrCodeUnsupportedType.
func (e *UnsupportedTypeError) Code() ErrorCode { return ErrCodeUnsupportedType }

// IsArityError returns true if the error is an ArityError.
// Uses errors.As to handle wrapped errors.
func IsArityError(err error) bool {
	var ae *ArityError
	return errors.As(err, &ae)
}

// IsUnsupportedTypeError returns true if the error is an UnsupportedTypeError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedTypeError(err error) bool {
	var ue *UnsupportedTypeError
	return errors.As(err, &ue)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a
// function error.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
