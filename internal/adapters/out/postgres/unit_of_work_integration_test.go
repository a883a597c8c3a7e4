//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "codeorders/internal/adapters/out/postgres"
	"codeorders/internal/adapters/out/postgres/migrate"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/ports"
	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/logging"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *recordingPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.Require().NoError(migrate.Up(ctx, dsn))

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, logging.Nop())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAndPublishes() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite.T())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(o.StartProcessing(time.Now()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o, order.Pending))
	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, retrieved.Status())

	events := suite.publisher.published()
	suite.Require().Len(events, 2)
	suite.Equal(order.Pending, events[0].To)
	suite.Equal(order.Processing, events[1].To)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite.T())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "order is visible inside its transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.publisher.published())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Isolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := createTestOrder(suite.T())
	order2 := createTestOrder(suite.T())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "uow1 must not see uncommitted order2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create().OrderRepository()
	_, err = fresh.Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = fresh.Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite.T())

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(o.ID()))
}

func TestUnitOfWorkIntegration(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
