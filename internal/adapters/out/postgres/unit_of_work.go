// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// The unit of work keeps a list of aggregates written during a business transaction and,
// once the transaction commits, publishes the status changes they recorded.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Per-order exclusion comes from the repository's conditional update, not locks
package postgres

import (
	"context"
	"log/slog"

	"codeorders/internal/adapters/out/postgres/orderrepo"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record status changes.
type eventSource interface {
	PullEvents() []order.StatusChanged
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "GormUnitOfWork"),
	}
}

// Create produces a new UnitOfWork instance with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the events recorded by every
// tracked aggregate. Publish failures are logged; the commit stands.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, for example after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
// Operations run inside the current transaction when one is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	publishEvents(ctx, uow.publisher, uow.logger, tracked)
}

func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, tracked []trackedAggregate) {
	if publisher == nil {
		return
	}

	var events []order.StatusChanged
	for _, t := range tracked {
		if source, ok := t.Aggregate.(eventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	if len(events) == 0 {
		return
	}

	if err := publisher.Publish(ctx, events...); err != nil {
		logger.ErrorContext(ctx, "failed to publish order events",
			"events", len(events),
			"error", err,
		)
	}
}
