package queries

import (
	"context"
)

// ListOrdersQueryHandler returns orders newest first.
type ListOrdersQueryHandler struct {
	reader OrderReader
}

func NewListOrdersQueryHandler(reader OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.List(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses, nil
}
