package order

import (
	"time"

	"codeorders/internal/core/domain/model/kernel"
)

// StatusChanged is recorded whenever an order changes status, including creation
// (From is Unknown). Events are published after the change is committed.
type StatusChanged struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	At      time.Time
}
