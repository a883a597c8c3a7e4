package jobs_test

import (
	"context"
	"testing"
	"time"

	"codeorders/internal/adapters/out/memory"
	"codeorders/internal/core/application/usecases/commands"
	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/jobs"
	"codeorders/internal/pkg/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory func() commands.OrderUoW

func (f uowFactory) Create() commands.OrderUoW { return f() }

func seedProcessing(t *testing.T, repo *memory.OrderRepository, startedAt time.Time) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer(order.CustomerDetails{
		Name:         "Kiran",
		Organization: "Kiran Foods",
		Country:      "India",
		Address:      "9 Lake Road, Bhopal",
		Phone:        "+91 755 400 1200",
		Email:        "kiran@foods.example",
	})
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customer, catalog.Code39, 5,
		decimal.NewFromInt(600), decimal.NewFromInt(108), startedAt.Add(-time.Minute))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, o))
	require.NoError(t, o.StartProcessing(startedAt))
	require.NoError(t, repo.Update(ctx, o, order.Pending))
	return o
}

func newJob(store *memory.Store, schedule string) *jobs.StaleOrderJob {
	logger := logging.Nop()
	factory := memory.NewUnitOfWorkFactory(store, nil, logger)
	handler := commands.NewFailStaleOrdersCommandHandler(
		uowFactory(func() commands.OrderUoW { return factory.Create() }), logger)

	return jobs.NewStaleOrderJob(handler, schedule, 10*time.Minute, logger)
}

func TestStaleOrderJob_RunOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store, nil)

	stale := seedProcessing(t, repo, time.Now().Add(-20*time.Minute))
	fresh := seedProcessing(t, repo, time.Now())

	job := newJob(store, "")

	failed, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	got, err := repo.Get(ctx, stale.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Failed, got.Status())

	got, err = repo.Get(ctx, fresh.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Processing, got.Status())

	failed, err = job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, failed)
}

func TestJobManager_StartStop(t *testing.T) {
	manager := jobs.NewJobManager(newJob(memory.NewStore(), "@every 1h"))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_InvalidSchedule(t *testing.T) {
	manager := jobs.NewJobManager(newJob(memory.NewStore(), "every now and then"))

	require.Error(t, manager.StartAll())
}
