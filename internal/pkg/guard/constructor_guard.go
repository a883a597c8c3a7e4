// Package guard provides ConstructorGuard, a marker embedded in value objects and
// commands so that zero values can be told apart from values built by a constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner was created through a constructor.
//
// Example usage:
//
//	var ErrPriceQueryNotConstructed = errors.New("PriceQuery must be created via NewPriceQuery")
//
//	type PriceQuery struct {
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewPriceQuery(quantity int) (PriceQuery, error) {
//	    if quantity <= 0 {
//	        return PriceQuery{}, errors.New("quantity must be positive")
//	    }
//	    return PriceQuery{quantity: quantity, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (q PriceQuery) Validate() error {
//	    return q.guard.Validate(ErrPriceQueryNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
