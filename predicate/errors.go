// Package predicate compiles specification values into predicates over the
// symbols of a class pool.
//
// Three predicates build on each other: AccessFlags tests a flag mask,
// Member tests one field or method, and Class tests a class together with
// its ancestors and the members it must declare. Patterns are compiled once
// with a shared wildcard.Indexer so that a later field of a rule can refer
// back to text captured by an earlier one; the captures themselves live in
// the wildcard.Manager passed to Test.
package predicate

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by the panics raised when a predicate is
// handed a nil pool or symbol.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a nil argument passed to a predicate.
type ArgumentError struct {
	Op  string
	Arg string
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("predicate: %s: nil %s", e.Op, e.Arg)
}

// Unwrap returns ErrInvalidArgument
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func mustNotBeNil(op, arg string, isNil bool) {
	if isNil {
		panic(&ArgumentError{Op: op, Arg: arg})
	}
}
