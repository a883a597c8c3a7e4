// Package ports defines the contracts between the order processing core and the
// infrastructure that stores orders, renders codes, bundles artifacts and publishes events.
package ports

import (
	"context"
	"time"

	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Failures of the underlying store are reported as errs.StoreUnavailableError,
// missing orders as errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the aggregate only if the stored status still equals expected.
	// When the order exists but its stored status differs, errs.StatusConflictError is
	// returned and nothing is written. This compare-and-set is what keeps two concurrent
	// process calls from both leaving pending.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns at most limit orders, newest first.
	List(ctx context.Context, limit int) ([]*order.Order, error)

	// ListStale returns at most limit orders in status whose last update is older than
	// updatedBefore, oldest first.
	ListStale(ctx context.Context, status order.Status, updatedBefore time.Time, limit int) ([]*order.Order, error)
}
