package order_test

import (
	"strings"
	"testing"

	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details() order.CustomerDetails {
	return order.CustomerDetails{
		Name:         "Ravi",
		Organization: "Northwind",
		Country:      "India",
		Address:      "4 MG Road, Pune",
		Phone:        "020-555-0199",
		Email:        "ravi@northwind.example",
	}
}

func TestNewCustomer(t *testing.T) {
	t.Run("should trim fields", func(t *testing.T) {
		d := details()
		d.Name = "  Ravi "
		d.Region = " Maharashtra "

		c, err := order.NewCustomer(d)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Ravi", c.Details().Name)
		assert.Equal(t, "Maharashtra", c.Region())
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := order.NewCustomer(order.CustomerDetails{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"name", "organization", "country", "address", "phone", "email"} {
			assert.Contains(t, err.Error(), "value is required: "+field)
		}
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "Ravi <ravi@northwind.example>"} {
			d := details()
			d.Email = email

			_, err := order.NewCustomer(d)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, email)
		}
	})

	t.Run("should reject malformed phone", func(t *testing.T) {
		for _, phone := range []string{"12345", "call me maybe"} {
			d := details()
			d.Phone = phone

			_, err := order.NewCustomer(d)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, phone)
		}
	})

	t.Run("should bound field length", func(t *testing.T) {
		d := details()
		d.Address = strings.Repeat("a", 257)

		_, err := order.NewCustomer(d)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c order.Customer

		require.ErrorIs(t, c.Validate(), order.ErrCustomerIsNotConstructed)
	})
}
