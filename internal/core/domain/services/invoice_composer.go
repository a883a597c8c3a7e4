package services

import (
	"fmt"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/invoice"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// InvoiceComposer builds invoices for orders. Invoice numbers come from a snowflake node,
// so they are unique per node id and roughly time ordered.
type InvoiceComposer struct {
	node *snowflake.Node
}

// NewInvoiceComposer creates a composer numbering invoices from the given snowflake node id
// (0..1023).
func NewInvoiceComposer(nodeID int64) (*InvoiceComposer, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("invoice node id", err)
	}
	return &InvoiceComposer{node: node}, nil
}

// Compose creates the invoice for o. The order carries one line item for its symbology
// whose total must equal the order's base amount.
func (c *InvoiceComposer) Compose(o *order.Order, breakdown tax.Breakdown) (invoice.Invoice, error) {
	if err := o.Validate(); err != nil {
		return invoice.Invoice{}, err
	}
	if !breakdown.Base.Equal(o.BaseAmount()) || !breakdown.Total.Equal(o.FinalAmount()) {
		return invoice.Invoice{}, errs.NewValueIsInvalidErrorWithCause("tax breakdown",
			fmt.Errorf("breakdown %s/%s does not match order %s/%s",
				breakdown.Base, breakdown.Total, o.BaseAmount(), o.FinalAmount()))
	}

	unitPrice := o.Symbology().UnitPrice()
	item := invoice.LineItem{
		Description: o.Symbology().DisplayName() + " Barcode",
		Quantity:    o.Quantity(),
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(int64(o.Quantity()))),
	}

	return invoice.NewInvoice(
		c.node.Generate().String(),
		o.ID(),
		o.Customer().Details(),
		[]invoice.LineItem{item},
		breakdown,
		catalog.Currency,
		o.CreatedAt(),
	)
}
