package commands

import (
	"errors"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to order a batch of codes.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), details, "qr_code", 100)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, calculator)
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	customer  order.Customer
	symbology catalog.Symbology
	quantity  int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the raw request. Customer details, symbology key and
// quantity are checked together and every violation is reported.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	details order.CustomerDetails,
	symbologyKey string,
	quantity int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(details),
		cmd.setSymbology(symbologyKey),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) Symbology() catalog.Symbology {
	return c.symbology
}

func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(details order.CustomerDetails) error {
	customer, err := order.NewCustomer(details)
	if err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setSymbology(key string) error {
	symbology, err := catalog.ParseSymbology(key)
	if err != nil {
		return err
	}

	c.symbology = symbology
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 || quantity > order.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxQuantity)
	}

	c.quantity = quantity
	return nil
}
