package invoice_test

import (
	"testing"
	"time"

	"codeorders/internal/core/domain/model/invoice"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakdown() tax.Breakdown {
	return tax.Breakdown{
		Base:      decimal.NewFromInt(6000),
		Tax:       decimal.NewFromInt(1080),
		Total:     decimal.NewFromInt(7080),
		IGST:      decimal.NewFromInt(1080),
		Treatment: tax.Integrated,
	}
}

func items() []invoice.LineItem {
	return []invoice.LineItem{{
		Description: "Code 128 Barcode",
		Quantity:    50,
		UnitPrice:   decimal.NewFromInt(120),
		Total:       decimal.NewFromInt(6000),
	}}
}

func TestNewInvoice(t *testing.T) {
	id := kernel.NewUUID()
	date := time.Date(2025, 4, 30, 23, 0, 0, 0, time.UTC)

	t.Run("should build invoice", func(t *testing.T) {
		inv, err := invoice.NewInvoice("1", id, order.CustomerDetails{Name: "Ravi"}, items(), breakdown(), "INR", date)

		require.NoError(t, err)
		require.NoError(t, inv.Validate())
		assert.Equal(t, "2025-04-30", inv.FormattedDate())
		assert.True(t, decimal.NewFromInt(7080).Equal(inv.FinalAmount()))
		assert.Equal(t, "INR", inv.Currency())
		assert.Len(t, inv.Items(), 1)
	})

	t.Run("should reject line totals that miss the base", func(t *testing.T) {
		li := items()
		li[0].Quantity = 49
		li[0].Total = decimal.NewFromInt(5880)

		_, err := invoice.NewInvoice("1", id, order.CustomerDetails{}, li, breakdown(), "INR", date)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "do not match base amount")
	})

	t.Run("should reject wrong line arithmetic", func(t *testing.T) {
		li := items()
		li[0].UnitPrice = decimal.NewFromInt(100)

		_, err := invoice.NewInvoice("1", id, order.CustomerDetails{}, li, breakdown(), "INR", date)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should report missing values", func(t *testing.T) {
		_, err := invoice.NewInvoice("", kernel.UUID{}, order.CustomerDetails{}, nil, breakdown(), "", date)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "invoice number")
		assert.Contains(t, err.Error(), "currency")
		assert.Contains(t, err.Error(), "line items")
	})

	t.Run("items are copied", func(t *testing.T) {
		inv, err := invoice.NewInvoice("1", id, order.CustomerDetails{}, items(), breakdown(), "INR", date)
		require.NoError(t, err)

		got := inv.Items()
		got[0].Description = "changed"

		assert.Equal(t, "Code 128 Barcode", inv.Items()[0].Description)
	})
}
