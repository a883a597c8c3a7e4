package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.StatusChanged
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...order.StatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) published() []order.StatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.StatusChanged(nil), p.events...)
}

func createTestOrder(t testing.TB) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer(order.CustomerDetails{
		Name:         "Ravi",
		Organization: "Shree Traders",
		Country:      "India",
		Address:      "4 MG Road, Pune",
		Phone:        "+91 20 5555 0101",
		Email:        "ravi@shree.example",
		Region:       "Maharashtra",
	})
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customer, catalog.Code128, 50,
		decimal.NewFromInt(6000), decimal.NewFromInt(1080), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	return o
}
