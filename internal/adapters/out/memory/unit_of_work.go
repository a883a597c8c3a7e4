package memory

import (
	"context"
	"errors"
	"log/slog"

	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over a shared Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "MemoryUnitOfWork"),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// UnitOfWork applies writes to the store immediately. Begin and Commit only bound the
// window in which written aggregates are collected; Rollback drops their events but
// does not undo the writes.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
	active    bool
	tracked   []*order.Order
}

func (uow *UnitOfWork) Begin(context.Context) error {
	uow.active = true
	return nil
}

// Commit publishes the events recorded by every aggregate written since Begin.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false

	tracked := uow.tracked
	uow.tracked = nil

	var events []order.StatusChanged
	for _, o := range tracked {
		events = append(events, o.PullEvents()...)
	}
	if len(events) == 0 || uow.publisher == nil {
		return nil
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish order events",
			"events", len(events),
			"error", err,
		)
	}
	return nil
}

func (uow *UnitOfWork) Rollback(context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.tracked = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return NewOrderRepository(uow.store, uow)
}

func (uow *UnitOfWork) TrackAggregate(_ kernel.UUID, aggregate any) {
	if o, ok := aggregate.(*order.Order); ok {
		uow.tracked = append(uow.tracked, o)
	}
}
