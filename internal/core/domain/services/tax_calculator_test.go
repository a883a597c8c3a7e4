package services_test

import (
	"testing"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/core/domain/services"
	"codeorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func newCalculator(t *testing.T) services.TaxCalculator {
	t.Helper()
	calc, err := services.NewTaxCalculator(services.DefaultHomeRegion)
	require.NoError(t, err)
	return calc
}

func TestTaxCalculator_ComputePrice(t *testing.T) {
	calc := newCalculator(t)

	t.Run("qr codes for the home region are split", func(t *testing.T) {
		b, err := calc.ComputePrice(catalog.QRCode, 100, "Gujarat")

		require.NoError(t, err)
		assert.Equal(t, tax.Split, b.Treatment)
		assertDecimal(t, "15000", b.Base)
		assertDecimal(t, "2700", b.Tax)
		assertDecimal(t, "1350", b.CGST)
		assertDecimal(t, "1350", b.SGST)
		assertDecimal(t, "0", b.IGST)
		assertDecimal(t, "17700", b.Total)
	})

	t.Run("code128 for another region is integrated", func(t *testing.T) {
		b, err := calc.ComputePrice(catalog.Code128, 50, "Maharashtra")

		require.NoError(t, err)
		assert.Equal(t, tax.Integrated, b.Treatment)
		assertDecimal(t, "6000", b.Base)
		assertDecimal(t, "1080", b.Tax)
		assertDecimal(t, "1080", b.IGST)
		assertDecimal(t, "0", b.CGST)
		assertDecimal(t, "7080", b.Total)
	})

	t.Run("unknown symbology is a validation error", func(t *testing.T) {
		_, err := calc.ComputePrice(catalog.Unknown, 1, "Gujarat")

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("non-positive quantity is out of range", func(t *testing.T) {
		for _, q := range []int{0, -5} {
			_, err := calc.ComputePrice(catalog.EAN13, q, "Gujarat")

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestTaxCalculator_ComputeTax(t *testing.T) {
	calc := newCalculator(t)

	t.Run("region matching ignores case and whitespace", func(t *testing.T) {
		for _, region := range []string{"gujarat", "  GUJARAT ", "Gujarat"} {
			b := calc.ComputeTax(dec("1000"), region)

			assert.Equal(t, tax.Split, b.Treatment, region)
		}
	})

	t.Run("empty and unknown regions are integrated", func(t *testing.T) {
		for _, region := range []string{"", "   ", "Atlantis", "Gujarat State"} {
			b := calc.ComputeTax(dec("1000"), region)

			assert.Equal(t, tax.Integrated, b.Treatment, region)
			assertDecimal(t, "180", b.IGST)
		}
	})

	t.Run("breakdown invariants hold for every catalog entry", func(t *testing.T) {
		for _, s := range catalog.All() {
			for _, q := range []int{1, 7, 333, 100000} {
				for _, region := range []string{"Gujarat", "Kerala"} {
					b, err := calc.ComputePrice(s, q, region)
					require.NoError(t, err)

					require.NoError(t, b.Validate())
					assert.True(t, b.Tax.Equal(b.Base.Mul(dec("0.18"))))
					assert.True(t, b.Base.Equal(s.UnitPrice().Mul(decimal.NewFromInt(int64(q)))))
				}
			}
		}
	})

	t.Run("configured home region is honored", func(t *testing.T) {
		calc, err := services.NewTaxCalculator(" Karnataka ")
		require.NoError(t, err)

		assert.Equal(t, "Karnataka", calc.HomeRegion())
		assert.Equal(t, tax.Split, calc.ComputeTax(dec("10"), "karnataka").Treatment)
		assert.Equal(t, tax.Integrated, calc.ComputeTax(dec("10"), "Gujarat").Treatment)
	})
}

func TestNewTaxCalculator_RequiresRegion(t *testing.T) {
	_, err := services.NewTaxCalculator(" ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
