package queries

import (
	"errors"

	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"
)

const (
	// DefaultListLimit is used when the caller does not supply a limit.
	DefaultListLimit = 50
	// MaxListLimit bounds a single listing.
	MaxListLimit = 1000
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists the most recent orders.
//
// Example:
//
//	query, err := NewListOrdersQuery(0) // default limit
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. A zero limit selects DefaultListLimit;
// anything else must lie in [1, MaxListLimit].
func NewListOrdersQuery(limit int) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	return ListOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}
