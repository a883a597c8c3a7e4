package commands

import (
	"context"
	"time"

	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/core/domain/services"
)

// CreateOrderResult is the persisted order together with the tax applied to it.
type CreateOrderResult struct {
	Order *order.Order
	Tax   tax.Breakdown
}

// CreateOrderCommandHandler prices and persists new orders in pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, calculator)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), details, "code128", 50)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// result.Order is pending, result.Tax holds the GST breakdown
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.TaxCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, calculator services.TaxCalculator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle computes the price for the customer's region and stores the order.
// Nothing reaches the store when validation or pricing fails.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	breakdown, err := h.calculator.ComputePrice(cmd.Symbology(), cmd.Quantity(), cmd.Customer().Region())
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Customer(),
		cmd.Symbology(),
		cmd.Quantity(),
		breakdown.Base,
		breakdown.Tax,
		time.Now(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{Order: o, Tax: breakdown}, nil
}
