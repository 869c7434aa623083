// Package guard provides ConstructorGuard, a marker that distinguishes values built by their
// constructor from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and aggregates so that a zero-value
// struct literal fails validation.
//
// Example usage:
//
//	var ErrInspectQueryIsNotConstructed = errors.New("InspectIdentifierQuery must be created via NewInspectIdentifierQuery")
//
//	type InspectIdentifierQuery struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func (q InspectIdentifierQuery) Validate() error {
//	    return q.guard.Validate(ErrInspectQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil) if the
// guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
