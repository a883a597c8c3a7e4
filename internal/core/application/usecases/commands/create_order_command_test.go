package commands_test

import (
	"testing"

	"codeorders/internal/core/application/usecases/commands"
	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerDetails(region string) order.CustomerDetails {
	return order.CustomerDetails{
		Name:         "Asha",
		Organization: "Acme Retail",
		Country:      "India",
		Address:      "12 Ring Road, Surat",
		Phone:        "+91 98250 12345",
		Email:        "asha@acme.example",
		Region:       region,
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(id, customerDetails("Gujarat"), "qr_code", 100)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, catalog.QRCode, cmd.Symbology())
		assert.Equal(t, 100, cmd.Quantity())
		assert.Equal(t, "Gujarat", cmd.Customer().Region())
	})

	t.Run("unknown symbology", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(id, customerDetails(""), "pdf417", 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("every violation is reported", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, order.CustomerDetails{}, "", 0)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "value is required: email")
		assert.Contains(t, err.Error(), "value is required: symbology")
		assert.Contains(t, err.Error(), "0 is quantity")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
