package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apihttp "codeorders/internal/adapters/in/http"
	"codeorders/internal/adapters/out/archive"
	"codeorders/internal/adapters/out/kafka"
	"codeorders/internal/adapters/out/memory"
	"codeorders/internal/adapters/out/postgres"
	"codeorders/internal/adapters/out/postgres/migrate"
	"codeorders/internal/adapters/out/postgres/orderrepo"
	"codeorders/internal/adapters/out/render"
	"codeorders/internal/core/application/usecases/commands"
	"codeorders/internal/core/application/usecases/queries"
	"codeorders/internal/core/domain/services"
	"codeorders/internal/core/ports"
	"codeorders/internal/jobs"

	"github.com/labstack/echo/v4"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	reader     queries.OrderReader
	calculator services.TaxCalculator
	composer   *services.InvoiceComposer
	closers    []func() error
}

// NewCompositionRoot connects the configured store and event publisher. Close releases
// them.
func NewCompositionRoot(ctx context.Context, configs Config, logger *slog.Logger) (*CompositionRoot, error) {
	calculator, err := services.NewTaxCalculator(configs.HomeRegion)
	if err != nil {
		return nil, err
	}
	composer, err := services.NewInvoiceComposer(configs.InvoiceNodeID)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:    configs,
		logger:     logger,
		calculator: calculator,
		composer:   composer,
	}

	var publisher ports.EventPublisher
	if configs.KafkaHost != "" {
		p := kafka.NewPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic, configs.KafkaPublishTimeout)
		c.closers = append(c.closers, p.Close)
		publisher = p
	}

	switch configs.StoreDriver {
	case StoreDriverMemory:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store, publisher, logger)
		c.reader = memory.NewOrderRepository(store, nil)
	default:
		if err = c.connectPostgres(ctx, publisher); err != nil {
			return nil, errors.Join(err, c.Close())
		}
	}

	return c, nil
}

func (c *CompositionRoot) connectPostgres(ctx context.Context, publisher ports.EventPublisher) error {
	conn := postgres.ConnectionConfig{
		Host:     c.configs.DBHost,
		Port:     c.configs.DBPort,
		User:     c.configs.DBUser,
		Password: c.configs.DBPassword,
		DBName:   c.configs.DBName,
		SSLMode:  c.configs.DBSslMode,
	}

	if err := migrate.Up(ctx, conn.DSN()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	gormDB, err := postgres.Open(ctx, conn)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDB.Close)

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, c.logger)
	c.reader = orderrepo.NewGormOrderRepository(gormDB, nil)
	return nil
}

// Close releases connections in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.calculator)
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() (*commands.ProcessOrderCommandHandler, error) {
	policy, err := commands.ParseRenderPolicy(c.configs.RenderPolicy)
	if err != nil {
		return nil, err
	}

	return commands.NewProcessOrderCommandHandler(commands.ProcessOrderDeps{
		UoWFactory: c.orderUoWFactory(),
		Calculator: c.calculator,
		Generator:  services.NewCodeGenerator(nil),
		Renderer:   render.NewRenderer(render.Options{}),
		Composer:   c.composer,
		Bundler:    archive.NewBundler(),
		Policy:     policy,
		Workers:    c.configs.RenderWorkers,
		Logger:     c.logger,
	}), nil
}

func (c *CompositionRoot) CreateFailStaleOrdersCommandHandler() commands.FailStaleOrdersCommandHandler {
	return commands.NewFailStaleOrdersCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetCatalogQueryHandler() queries.GetCatalogQueryHandler {
	return queries.NewGetCatalogQueryHandler()
}

func (c *CompositionRoot) CreateCalculatePriceQueryHandler() queries.CalculatePriceQueryHandler {
	return queries.NewCalculatePriceQueryHandler(c.calculator)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader)
}

// CreateRouter wires every handler into the HTTP router.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	processHandler, err := c.CreateProcessOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	server := apihttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		processHandler,
		c.CreateGetCatalogQueryHandler(),
		c.CreateCalculatePriceQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)

	return apihttp.NewRouter(ctx, server, apihttp.RouterOptions{
		RateLimitRPS:       c.configs.RateLimitRPS,
		CORSAllowedOrigins: c.configs.CORSAllowedOrigins,
		Logger:             c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewStaleOrderJob(
		c.CreateFailStaleOrdersCommandHandler(),
		c.configs.StaleOrderSchedule,
		c.configs.ProcessingTimeout,
		c.logger,
	))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
