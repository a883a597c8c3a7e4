package queries

import (
	"errors"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"
)

var (
	ErrCalculatePriceQueryIsNotConstructed = errors.New(
		"CalculatePriceQuery must be created via NewCalculatePriceQuery constructor",
	)
)

// CalculatePriceQuery prices a prospective order without storing anything.
type CalculatePriceQuery struct {
	symbology catalog.Symbology
	quantity  int
	region    string
	guard     guard.ConstructorGuard
}

// NewCalculatePriceQuery validates the symbology key and quantity. Region may be empty.
func NewCalculatePriceQuery(symbologyKey string, quantity int, region string) (CalculatePriceQuery, error) {
	symbology, symErr := catalog.ParseSymbology(symbologyKey)

	var qtyErr error
	if quantity <= 0 || quantity > order.MaxQuantity {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxQuantity)
	}

	if err := errors.Join(symErr, qtyErr); err != nil {
		return CalculatePriceQuery{}, err
	}

	return CalculatePriceQuery{
		symbology: symbology,
		quantity:  quantity,
		region:    region,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculatePriceQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePriceQueryIsNotConstructed)
}

func (q CalculatePriceQuery) Symbology() catalog.Symbology {
	return q.symbology
}

func (q CalculatePriceQuery) Quantity() int {
	return q.quantity
}

func (q CalculatePriceQuery) Region() string {
	return q.region
}
