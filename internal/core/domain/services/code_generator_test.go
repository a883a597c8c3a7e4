package services_test

import (
	"strings"
	"testing"
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/services"
	"codeorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Generate(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := services.NewCodeGenerator(func() time.Time { return at })

	t.Run("should generate exactly quantity unique records", func(t *testing.T) {
		records, err := gen.Generate(catalog.Code39, 500)

		require.NoError(t, err)
		require.Len(t, records, 500)

		seen := make(map[string]struct{}, len(records))
		for _, r := range records {
			assert.True(t, strings.HasPrefix(r.ID(), "CODE39"), r.ID())
			assert.Len(t, r.ID(), len("CODE39")+8)
			assert.Equal(t, r.ID(), r.Payload())
			assert.Equal(t, catalog.Code39, r.Symbology())
			assert.Equal(t, at, r.GeneratedAt())
			seen[r.ID()] = struct{}{}
		}
		assert.Len(t, seen, 500)
	})

	t.Run("ids stay distinct at the maximum batch size", func(t *testing.T) {
		records, err := gen.Generate(catalog.QRCode, order.MaxQuantity)

		require.NoError(t, err)
		require.Len(t, records, order.MaxQuantity)

		seen := make(map[string]struct{}, len(records))
		for _, r := range records {
			seen[r.ID()] = struct{}{}
		}
		assert.Len(t, seen, order.MaxQuantity)
	})

	t.Run("colliding tokens are redrawn", func(t *testing.T) {
		tokens := []string{"aaaaaaaa-1", "aaaaaaaa-2", "bbbbbbbb-1", "aaaaaaaa-3", "cccccccc-1"}
		next := 0
		repeating := gen.WithTokenSource(func() string {
			tok := tokens[next]
			next++
			return tok
		})

		records, err := repeating.Generate(catalog.Code128, 3)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "CODE128aaaaaaaa", records[0].ID())
		assert.Equal(t, "CODE128bbbbbbbb", records[1].ID())
		assert.Equal(t, "CODE128cccccccc", records[2].ID())
		assert.Equal(t, 5, next)
	})

	t.Run("prefix follows the catalog key", func(t *testing.T) {
		records, err := gen.Generate(catalog.QRCode, 1)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(records[0].ID(), "QR_CODE"))
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		_, err := gen.Generate(catalog.Unknown, 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = gen.Generate(catalog.QRCode, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("nil clock falls back to wall time", func(t *testing.T) {
		records, err := services.NewCodeGenerator(nil).Generate(catalog.UPCA, 1)

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), records[0].GeneratedAt(), time.Minute)
	})
}
