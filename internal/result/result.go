// Package result models the outcome of an operation that can fail in an
// expected way. A Result holds either a value or a non-empty error message.
package result

import "strings"

// Result is the outcome of a fallible operation.
type Result[T any] struct {
	value T
	err   string
	ok    bool
}

// Empty is a Result with no payload.
type Empty = Result[struct{}]

// Success wraps a value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Failure builds a failed Result. It panics when msg is blank.
func Failure[T any](msg string) Result[T] {
	if strings.TrimSpace(msg) == "" {
		panic("result: failure requires an error message")
	}
	return Result[T]{err: msg}
}

// New builds a Result from its parts and panics on the two illegal
// combinations: success with a message and failure without one.
func New[T any](v T, ok bool, msg string) Result[T] {
	if ok && msg != "" {
		panic("result: success cannot carry an error message")
	}
	if ok {
		return Success(v)
	}
	return Failure[T](msg)
}

// Ok is a successful Empty.
func Ok() Empty {
	return Success(struct{}{})
}

// Fail is a failed Empty.
func Fail(msg string) Empty {
	return Failure[struct{}](msg)
}

// Propagate carries the error of a failed Result into another payload type.
func Propagate[U, T any](r Result[T]) Result[U] {
	if r.ok {
		panic("result: cannot propagate a successful result")
	}
	return Failure[U](r.err)
}

func (r Result[T]) IsSuccess() bool { return r.ok }

func (r Result[T]) IsFailure() bool { return !r.ok }

// Error returns the failure message, or "" on success.
func (r Result[T]) Error() string { return r.err }

// Value returns the payload. Calling it on a failure panics.
func (r Result[T]) Value() T {
	if !r.ok {
		panic("result: value of a failed result: " + r.err)
	}
	return r.value
}
