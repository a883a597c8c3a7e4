// Package memory keeps orders in process memory. It backs local runs and tests with the
// same repository and unit of work contracts as the postgres adapter.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrDuplicateOrder is the cause reported when Add meets an existing id.
var ErrDuplicateOrder = errors.New("order with this id already exists")

// Store is a concurrency-safe map of order snapshots keyed by id.
type Store struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]order.Snapshot
}

func NewStore() *Store {
	return &Store{byID: make(map[uuid.UUID]order.Snapshot)}
}

// Len reports the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store   *Store
	tracker aggregateTracker
}

func NewOrderRepository(store *Store, tracker aggregateTracker) *OrderRepository {
	return &OrderRepository{store: store, tracker: tracker}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	key := snapshot.ID.Raw()

	r.store.mu.Lock()
	if _, ok := r.store.byID[key]; ok {
		r.store.mu.Unlock()
		return errs.NewStoreUnavailableErrorWithCause("orders.add", ErrDuplicateOrder)
	}
	r.store.byID[key] = snapshot
	r.store.mu.Unlock()

	r.track(aggregate)
	return nil
}

// Update replaces the stored snapshot only while its status equals expected.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	key := snapshot.ID.Raw()

	r.store.mu.Lock()
	current, ok := r.store.byID[key]
	if !ok {
		r.store.mu.Unlock()
		return errs.NewObjectNotFoundError("order", snapshot.ID.String())
	}
	if current.Status != expected {
		r.store.mu.Unlock()
		return errs.NewStatusConflictError(snapshot.ID.String(), current.Status.String(), expected.String())
	}
	current.Status = snapshot.Status
	current.PaymentStatus = snapshot.PaymentStatus
	current.UpdatedAt = snapshot.UpdatedAt
	r.store.byID[key] = current
	r.store.mu.Unlock()

	r.track(aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	snapshot, ok := r.store.byID[id.Raw()]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

// List returns at most limit orders, newest first, ties broken by id.
func (r *OrderRepository) List(_ context.Context, limit int) ([]*order.Order, error) {
	snapshots := r.store.filter(func(order.Snapshot) bool { return true })

	sort.Slice(snapshots, func(i, j int) bool {
		a, b := snapshots[i], snapshots[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	return restoreAll(snapshots, limit)
}

// ListStale returns orders in status last updated before updatedBefore, oldest first.
func (r *OrderRepository) ListStale(
	_ context.Context,
	status order.Status,
	updatedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	snapshots := r.store.filter(func(s order.Snapshot) bool {
		return s.Status == status && s.UpdatedAt.Before(updatedBefore)
	})

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].UpdatedAt.Before(snapshots[j].UpdatedAt)
	})

	return restoreAll(snapshots, limit)
}

func (r *OrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func (s *Store) filter(keep func(order.Snapshot) bool) []order.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.Snapshot, 0, len(s.byID))
	for _, snapshot := range s.byID {
		if keep(snapshot) {
			out = append(out, snapshot)
		}
	}
	return out
}

func restoreAll(snapshots []order.Snapshot, limit int) ([]*order.Order, error) {
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	orders := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
