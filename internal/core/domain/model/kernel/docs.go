// Package kernel provides shared domain primitives for the order processing service.
//
// The package includes:
//   - UUID: a value object for aggregate identifiers with validation and comparison
//
// The zero value of every primitive is invalid; values are created through constructors
// and are immutable, making them safe for concurrent use.
package kernel
