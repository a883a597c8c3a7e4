package kernel

import (
	"fmt"

	"codeorders/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not created through one of the constructors.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID is a value object wrapping github.com/google/uuid.
// The zero value is invalid and must be constructed using NewUUID or UUIDFromString.
//
// Example usage:
//
//	id := kernel.NewUUID()
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from its string representation.
// Braced, urn-prefixed and hyphen-less forms are accepted; the nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("UUID", fmt.Errorf("invalid UUID format: %w", err))
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromRaw wraps an already parsed uuid.UUID, typically read from storage.
func UUIDFromRaw(id uuid.UUID) (UUID, error) {
	wrapped := UUID{id: id}
	if err := wrapped.Validate(); err != nil {
		return UUID{}, err
	}
	return wrapped, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Raw returns the underlying uuid.UUID for adapters that persist or transmit it.
func (u UUID) Raw() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
