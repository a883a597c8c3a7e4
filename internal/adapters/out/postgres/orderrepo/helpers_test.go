package orderrepo_test

import (
	"testing"
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAggregateTracker records the aggregates a repository reports as written.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func newTestOrder(t testing.TB, createdAt time.Time) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer(order.CustomerDetails{
		Name:         "Asha",
		Organization: "Acme Retail",
		Country:      "India",
		Address:      "12 Ring Road, Surat",
		Phone:        "+91 98250 12345",
		Email:        "asha@acme.example",
		Region:       "Gujarat",
	})
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customer, catalog.QRCode, 100,
		decimal.NewFromInt(15000), decimal.NewFromInt(2700), createdAt)
	require.NoError(t, err)
	return o
}
