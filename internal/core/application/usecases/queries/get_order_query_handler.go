package queries

import (
	"context"
)

// GetOrderQueryHandler returns the current state of one order.
// A missing order yields errs.ObjectNotFoundError.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return NewOrderResponse(o), nil
}
