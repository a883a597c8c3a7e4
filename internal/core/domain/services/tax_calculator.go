package services

import (
	"strings"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultHomeRegion is the region whose customers are charged split CGST + SGST.
const DefaultHomeRegion = "Gujarat"

//nolint:gochecknoglobals // fixed statutory rates
var (
	gstRate       = decimal.RequireFromString("0.18")
	gstStateShare = decimal.RequireFromString("0.09")
)

// TaxCalculator computes prices and GST for orders.
//
// Business rules:
//   - Base amount is catalog unit price multiplied by quantity
//   - Tax is 18% of the base amount
//   - Customers in the home region pay 9% CGST and 9% SGST, everyone else 18% IGST
//   - Region matching ignores case and surrounding whitespace; an empty region is
//     treated as out of the home region
//
// Example usage:
//
//	calc, _ := services.NewTaxCalculator("Gujarat")
//	b, err := calc.ComputePrice(catalog.QRCode, 100, "gujarat")
//	// b.Base = 15000, b.CGST = 1350, b.SGST = 1350, b.Total = 17700
type TaxCalculator struct {
	homeRegion string
}

// NewTaxCalculator creates a calculator for the given home region.
func NewTaxCalculator(homeRegion string) (TaxCalculator, error) {
	homeRegion = strings.TrimSpace(homeRegion)
	if homeRegion == "" {
		return TaxCalculator{}, errs.NewValueIsRequiredError("home region")
	}
	return TaxCalculator{homeRegion: homeRegion}, nil
}

// HomeRegion returns the configured home region.
func (c TaxCalculator) HomeRegion() string {
	return c.homeRegion
}

// ComputeTax applies GST to base. It never fails.
func (c TaxCalculator) ComputeTax(base decimal.Decimal, region string) tax.Breakdown {
	b := tax.Breakdown{
		Base: base,
		Tax:  base.Mul(gstRate),
	}
	b.Total = b.Base.Add(b.Tax)

	if c.isHomeRegion(region) {
		b.Treatment = tax.Split
		b.CGST = base.Mul(gstStateShare)
		b.SGST = base.Mul(gstStateShare)
		return b
	}

	b.Treatment = tax.Integrated
	b.IGST = b.Tax
	return b
}

// ComputePrice validates the request, derives the base amount from the catalog and
// applies tax.
func (c TaxCalculator) ComputePrice(symbology catalog.Symbology, quantity int, region string) (tax.Breakdown, error) {
	if err := symbology.Validate(); err != nil {
		return tax.Breakdown{}, err
	}
	if quantity <= 0 || quantity > order.MaxQuantity {
		return tax.Breakdown{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxQuantity)
	}

	base := symbology.UnitPrice().Mul(decimal.NewFromInt(int64(quantity)))
	return c.ComputeTax(base, region), nil
}

func (c TaxCalculator) isHomeRegion(region string) bool {
	return strings.EqualFold(strings.TrimSpace(region), c.homeRegion)
}
