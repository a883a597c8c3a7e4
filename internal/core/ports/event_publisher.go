package ports

import (
	"context"

	"codeorders/internal/core/domain/model/order"
)

// EventPublisher delivers committed order status changes to interested parties.
// Delivery is at most once; callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChanged) error
}
