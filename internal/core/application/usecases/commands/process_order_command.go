package commands

import (
	"errors"

	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/pkg/guard"
)

var (
	ErrProcessOrderCommandIsNotConstructed = errors.New(
		"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
	)
)

// ProcessOrderCommand requests the artifact bundle of a pending order.
type ProcessOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand creates a command for the given order.
func NewProcessOrderCommand(orderID kernel.UUID) (ProcessOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProcessOrderCommand{}, err
	}
	return ProcessOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

func (c ProcessOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
