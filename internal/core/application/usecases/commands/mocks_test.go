package commands_test

import (
	"context"
	"time"

	"codeorders/internal/core/application/usecases/commands"
	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListStale(
	ctx context.Context,
	status order.Status,
	updatedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, status, updatedBefore, limit)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCodeRenderer struct{ mock.Mock }

func (m *MockCodeRenderer) Render(payload string, symbology catalog.Symbology) ([]byte, error) {
	args := m.Called(payload, symbology)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockArtifactBundler struct{ mock.Mock }

func (m *MockArtifactBundler) Bundle(artifacts ports.Artifacts) ([]byte, error) {
	args := m.Called(artifacts)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
