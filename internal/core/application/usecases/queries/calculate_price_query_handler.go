package queries

import (
	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// CalculatePriceResponse is the price of a prospective order.
type CalculatePriceResponse struct {
	Symbology catalog.Symbology
	Quantity  int
	UnitPrice decimal.Decimal
	Tax       tax.Breakdown
	Currency  string
}

// CalculatePriceQueryHandler applies the tax calculator to a price query.
type CalculatePriceQueryHandler struct {
	calculator services.TaxCalculator
}

func NewCalculatePriceQueryHandler(calculator services.TaxCalculator) CalculatePriceQueryHandler {
	return CalculatePriceQueryHandler{calculator: calculator}
}

func (h CalculatePriceQueryHandler) Handle(query CalculatePriceQuery) (CalculatePriceResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculatePriceResponse{}, err
	}

	breakdown, err := h.calculator.ComputePrice(query.Symbology(), query.Quantity(), query.Region())
	if err != nil {
		return CalculatePriceResponse{}, err
	}

	return CalculatePriceResponse{
		Symbology: query.Symbology(),
		Quantity:  query.Quantity(),
		UnitPrice: query.Symbology().UnitPrice(),
		Tax:       breakdown,
		Currency:  catalog.Currency,
	}, nil
}
