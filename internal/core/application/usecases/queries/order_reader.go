// Package queries contains read-only operations over orders, the catalog and pricing.
// Query handlers never open a unit of work and never change state.
package queries

import (
	"context"
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderReader is the read side of the order repository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	List(ctx context.Context, limit int) ([]*order.Order, error)
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID            kernel.UUID
	Customer      order.CustomerDetails
	Symbology     catalog.Symbology
	Quantity      int
	BaseAmount    decimal.Decimal
	TaxAmount     decimal.Decimal
	FinalAmount   decimal.Decimal
	Status        order.Status
	PaymentStatus order.PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrderResponse flattens an order aggregate into its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID(),
		Customer:      o.Customer().Details(),
		Symbology:     o.Symbology(),
		Quantity:      o.Quantity(),
		BaseAmount:    o.BaseAmount(),
		TaxAmount:     o.TaxAmount(),
		FinalAmount:   o.FinalAmount(),
		Status:        o.Status(),
		PaymentStatus: o.PaymentStatus(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}
