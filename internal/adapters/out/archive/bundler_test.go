package archive_test

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"
	"time"

	"codeorders/internal/adapters/out/archive"
	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/code"
	"codeorders/internal/core/domain/model/invoice"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/core/ports"
	"codeorders/internal/pkg/errs"

	"github.com/klauspost/compress/zip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var generatedAt = time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)

func records(t *testing.T, ids ...string) []code.Record {
	t.Helper()
	out := make([]code.Record, 0, len(ids))
	for _, id := range ids {
		r, err := code.NewRecord(id, catalog.EAN13, id, generatedAt)
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func testInvoice(t *testing.T, quantity int64) invoice.Invoice {
	t.Helper()
	base := decimal.NewFromInt(140 * quantity)
	b := tax.Breakdown{
		Base:      base,
		Tax:       base.Mul(decimal.RequireFromString("0.18")),
		CGST:      base.Mul(decimal.RequireFromString("0.09")),
		SGST:      base.Mul(decimal.RequireFromString("0.09")),
		Treatment: tax.Split,
	}
	b.Total = b.Base.Add(b.Tax)

	inv, err := invoice.NewInvoice("1234", kernel.NewUUID(),
		order.CustomerDetails{Name: "Asha", Organization: "Acme", Region: "Gujarat"},
		[]invoice.LineItem{{
			Description: "EAN-13 Barcode",
			Quantity:    int(quantity),
			UnitPrice:   decimal.NewFromInt(140),
			Total:       base,
		}},
		b, "INR", generatedAt)
	require.NoError(t, err)
	return inv
}

func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = content
	}
	return files
}

func TestBundler_Bundle(t *testing.T) {
	recs := records(t, "EAN13aaaa1111", "EAN13bbbb2222", "EAN13cccc3333")
	failure := errs.NewRenderFailedErrorWithCause("ean13", "EAN13bbbb2222", assert.AnError).ForRecord("EAN13bbbb2222")

	data, err := archive.NewBundler().Bundle(ports.Artifacts{
		Records: recs,
		Images: map[string][]byte{
			"EAN13aaaa1111": []byte("png-a"),
			"EAN13cccc3333": []byte("png-c"),
		},
		Failures: []*errs.RenderFailedError{failure},
		Invoice:  testInvoice(t, 3),
	})
	require.NoError(t, err)

	files := unzip(t, data)
	require.Len(t, files, 4)
	assert.Equal(t, []byte("png-a"), files["barcodes/EAN13aaaa1111.png"])
	assert.Equal(t, []byte("png-c"), files["barcodes/EAN13cccc3333.png"])
	assert.NotContains(t, files, "barcodes/EAN13bbbb2222.png")

	t.Run("manifest lists every record", func(t *testing.T) {
		f, err := excelize.OpenReader(bytes.NewReader(files[archive.ManifestName]))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		rows, err := f.GetRows(archive.DataSheet)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Barcode ID", "Type", "Data", "Generated At"}, rows[0])
		assert.Equal(t, []string{"EAN13aaaa1111", "ean13", "EAN13aaaa1111", "2025-05-06T07:08:09Z"}, rows[1])
		assert.Equal(t, "EAN13bbbb2222", rows[2][0])
		assert.Equal(t, "EAN13cccc3333", rows[3][0])

		errRows, err := f.GetRows(archive.RenderErrorSheet)
		require.NoError(t, err)
		require.Len(t, errRows, 2)
		assert.Equal(t, "EAN13bbbb2222", errRows[1][0])
		assert.Equal(t, assert.AnError.Error(), errRows[1][3])
	})

	t.Run("invoice is indented json", func(t *testing.T) {
		raw := files[archive.InvoiceName]
		assert.Contains(t, string(raw), "\n  \"invoice_number\": \"1234\"")

		var doc archive.InvoiceDTO
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, "2025-05-06", doc.Date)
		assert.Equal(t, "INR", doc.Currency)
		assert.InDelta(t, 420, doc.Subtotal, 1e-9)
		assert.InDelta(t, 495.6, doc.Total, 1e-9)
		require.NotNil(t, doc.Tax.CGST)
		assert.InDelta(t, 37.8, *doc.Tax.CGST, 1e-9)
		assert.Nil(t, doc.Tax.IGST)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "EAN-13 Barcode", doc.Items[0].Description)
	})
}

func TestBundler_Bundle_NoFailures(t *testing.T) {
	recs := records(t, "EAN13dddd4444")

	data, err := archive.NewBundler().Bundle(ports.Artifacts{
		Records: recs,
		Images:  map[string][]byte{"EAN13dddd4444": []byte("png")},
		Invoice: testInvoice(t, 1),
	})
	require.NoError(t, err)

	files := unzip(t, data)
	f, err := excelize.OpenReader(bytes.NewReader(files[archive.ManifestName]))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{archive.DataSheet}, f.GetSheetList())
}
