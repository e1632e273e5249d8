// Package rterror defines error values that surface to script code, tagged
// with the script-level error kind they map to.
package rterror

import (
	"github.com/pkg/errors"
)

// Kind is a script-visible error category.
type Kind string

const (
	// Range covers invalid or out-of-bounds numeric inputs.
	Range Kind = "RangeError"
	// Type covers values of an unusable type.
	Type Kind = "TypeError"
)

type Error interface {
	error
	Message() string
	Kind() Kind
}

type rtErr struct {
	error
	kind Kind
}

func New(message string, kind Kind) Error {
	return WrapErr(errors.New(message), kind)
}

func WrapErr(err error, kind Kind) Error {
	return &rtErr{
		error: err,
		kind:  kind,
	}
}

func (e *rtErr) Message() string {
	return e.Error()
}

func (e *rtErr) Kind() Kind {
	return e.kind
}

// KindOf reports the script-visible kind of err, unwrapping as needed.
// The second return is false when no kind is attached anywhere in the chain.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if rtErr, ok := err.(Error); ok {
			return rtErr.Kind(), true
		}
		wrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = wrapped.Unwrap()
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
