// Package invoice defines the Invoice document issued for a processed order.
package invoice

import (
	"errors"
	"fmt"
	"time"

	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DateLayout is the format of the invoice date.
const DateLayout = "2006-01-02"

// ErrInvoiceIsNotConstructed is returned when an Invoice was not built by NewInvoice.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// LineItem is one billed position.
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Invoice is an immutable billing document. Line totals add up to the taxable base and
// the final amount equals the breakdown total.
type Invoice struct {
	number   string
	orderID  kernel.UUID
	customer order.CustomerDetails
	items    []LineItem
	tax      tax.Breakdown
	currency string
	date     time.Time
	guard    guard.ConstructorGuard
}

// NewInvoice validates line items against the tax breakdown.
func NewInvoice(
	number string,
	orderID kernel.UUID,
	customer order.CustomerDetails,
	items []LineItem,
	breakdown tax.Breakdown,
	currency string,
	date time.Time,
) (Invoice, error) {
	var problems []error
	if number == "" {
		problems = append(problems, errs.NewValueIsRequiredError("invoice number"))
	}
	if currency == "" {
		problems = append(problems, errs.NewValueIsRequiredError("currency"))
	}
	if len(items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("line items"))
	}
	problems = append(problems, orderID.Validate(), breakdown.Validate(), validateItems(items, breakdown.Base))
	if err := errors.Join(problems...); err != nil {
		return Invoice{}, err
	}

	return Invoice{
		number:   number,
		orderID:  orderID,
		customer: customer,
		items:    append([]LineItem(nil), items...),
		tax:      breakdown,
		currency: currency,
		date:     date.UTC(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func validateItems(items []LineItem, base decimal.Decimal) error {
	sum := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("line %d quantity", i+1), item.Quantity, 1, order.MaxQuantity)
		}
		if want := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))); !want.Equal(item.Total) {
			return errs.NewValueIsInvalidErrorWithCause("line item",
				fmt.Errorf("line %d total %s is not %d x %s", i+1, item.Total, item.Quantity, item.UnitPrice))
		}
		sum = sum.Add(item.Total)
	}
	if len(items) > 0 && !sum.Equal(base) {
		return errs.NewValueIsInvalidErrorWithCause("line item",
			fmt.Errorf("line totals %s do not match base amount %s", sum, base))
	}
	return nil
}

func (i Invoice) Number() string { return i.number }
func (i Invoice) OrderID() kernel.UUID { return i.orderID }
func (i Invoice) Customer() order.CustomerDetails { return i.customer }
func (i Invoice) Tax() tax.Breakdown { return i.tax }
func (i Invoice) FinalAmount() decimal.Decimal { return i.tax.Total }
func (i Invoice) Currency() string { return i.currency }
func (i Invoice) Date() time.Time { return i.date }

// Items returns a copy of the line items.
func (i Invoice) Items() []LineItem {
	return append([]LineItem(nil), i.items...)
}

// FormattedDate returns the invoice date as YYYY-MM-DD.
func (i Invoice) FormattedDate() string {
	return i.date.Format(DateLayout)
}

// Validate ensures the invoice was created through NewInvoice.
func (i Invoice) Validate() error {
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}
