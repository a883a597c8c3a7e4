package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"codeorders/internal/core/application/usecases/commands"
	"codeorders/internal/core/application/usecases/queries"
	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// RenderFailuresHeader carries the number of codes left out of a processed archive.
const RenderFailuresHeader = "X-Render-Failures"

// Server handles HTTP requests by delegating to application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	processOrderHandler *commands.ProcessOrderCommandHandler

	// Query handlers
	getCatalogHandler     queries.GetCatalogQueryHandler
	calculatePriceHandler queries.CalculatePriceQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
	listOrdersHandler     queries.ListOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	processOrderHandler *commands.ProcessOrderCommandHandler,
	getCatalogHandler queries.GetCatalogQueryHandler,
	calculatePriceHandler queries.CalculatePriceQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		processOrderHandler:   processOrderHandler,
		getCatalogHandler:     getCatalogHandler,
		calculatePriceHandler: calculatePriceHandler,
		getOrderHandler:       getOrderHandler,
		listOrdersHandler:     listOrdersHandler,
		logger:                logger.With("component", "HTTPServer"),
	}
}

// GetCatalog handles GET /api/catalog.
func (s *Server) GetCatalog(c echo.Context) error {
	offer := s.getCatalogHandler.Handle()

	response := CatalogResponse{
		Symbologies: make(map[string]CatalogEntry, len(offer.Items)),
		Currency:    offer.Currency,
	}
	for _, item := range offer.Items {
		response.Symbologies[item.Symbology.Key()] = CatalogEntry{
			Name:  item.Name,
			Price: item.UnitPrice.InexactFloat64(),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// CalculatePrice handles POST /api/price.
func (s *Server) CalculatePrice(c echo.Context) error {
	var req PriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	query, err := queries.NewCalculatePriceQuery(req.Symbology, req.Quantity, req.Region)
	if err != nil {
		return s.writeError(c, err, "Failed to calculate price")
	}

	price, err := s.calculatePriceHandler.Handle(query)
	if err != nil {
		return s.writeError(c, err, "Failed to calculate price")
	}

	return c.JSON(http.StatusOK, PriceResponse{
		Symbology: price.Symbology.Key(),
		Quantity:  price.Quantity,
		UnitPrice: price.UnitPrice.InexactFloat64(),
		Pricing:   taxDetailsFromDomain(price.Tax),
		Currency:  price.Currency,
	})
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), req.CustomerDetails.toDomain(), req.Symbology, req.Quantity)
	if err != nil {
		return s.writeError(c, err, "Failed to create order")
	}

	result, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err, "Failed to create order")
	}

	created := orderFromResponse(queries.NewOrderResponse(result.Order))
	return c.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:    created.ID,
		Order:      created,
		TaxDetails: taxDetailsFromDomain(result.Tax),
		Currency:   catalog.Currency,
	})
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := bindOrderID(c)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve order")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve order")
	}

	o, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve order")
	}

	return c.JSON(http.StatusOK, orderFromResponse(o))
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: err.Error()})
	}

	requested := 0
	if limit != nil {
		requested = *limit
	}

	query, err := queries.NewListOrdersQuery(requested)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve orders")
	}

	orders, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve orders")
	}

	response := ListOrdersResponse{Orders: make([]OrderDTO, len(orders))}
	for i, o := range orders {
		response.Orders[i] = orderFromResponse(o)
	}

	return c.JSON(http.StatusOK, response)
}

// ProcessOrder handles POST /api/orders/{id}/process and streams back the archive.
func (s *Server) ProcessOrder(c echo.Context) error {
	id, err := bindOrderID(c)
	if err != nil {
		return s.writeError(c, err, "Failed to process order")
	}

	cmd, err := commands.NewProcessOrderCommand(id)
	if err != nil {
		return s.writeError(c, err, "Failed to process order")
	}

	result, err := s.processOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err, "Failed to process order")
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, "attachment; filename="+result.Filename)
	header.Set(RenderFailuresHeader, strconv.Itoa(len(result.RenderFailures)))
	return c.Blob(http.StatusOK, "application/zip", result.Archive)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// bindOrderID reads the id path parameter. An id that is not a UUID cannot name a
// stored order, so it is reported as not found.
func bindOrderID(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause("order", c.Param("id"), err)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause("order", raw, err)
	}
	return id, nil
}
