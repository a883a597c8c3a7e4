package orderrepo

import (
	"context"
	"errors"
	"time"

	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type discardTracker struct{}

func (discardTracker) TrackAggregate(kernel.UUID, any) {}

// NewGormOrderRepository creates a new GORM order repository. A nil tracker gives a
// repository whose writes are not tracked, suitable for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	if tracker == nil {
		tracker = discardTracker{}
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreUnavailableErrorWithCause("orders.add", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns only while the stored status equals expected.
// Zero affected rows means the order is missing or moved on; a follow-up read tells
// the two apart.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND order_status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"order_status":   dto.OrderStatus,
			"payment_status": dto.PaymentStatus,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.NewStoreUnavailableErrorWithCause("orders.update", result.Error)
	}

	if result.RowsAffected == 0 {
		var current OrderDTO
		err := r.db.WithContext(ctx).Select("order_status").Take(&current, "id = ?", dto.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		if err != nil {
			return errs.NewStoreUnavailableErrorWithCause("orders.update", err)
		}
		return errs.NewStatusConflictError(aggregate.ID().String(), current.OrderStatus, expected.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStoreUnavailableErrorWithCause("orders.get", err)
	}

	return toDomain(dto)
}

// List retrieves at most limit orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders.list", err)
	}

	return toDomainAll(dtos)
}

// ListStale retrieves orders in status not updated since updatedBefore, oldest first.
func (r *GormOrderRepository) ListStale(
	ctx context.Context,
	status order.Status,
	updatedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("order_status = ? AND updated_at < ?", status.String(), updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders.list_stale", err)
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
