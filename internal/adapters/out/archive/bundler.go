// Package archive packs the artifacts of a processed order into one zip archive:
// an xlsx manifest, one PNG per rendered code and the invoice as JSON.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"codeorders/internal/core/ports"

	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
)

const (
	ManifestName     = "barcode_data.xlsx"
	InvoiceName      = "invoice.json"
	ImageDir         = "barcodes/"
	DataSheet        = "Barcode_Data"
	RenderErrorSheet = "Render_Errors"
)

//nolint:gochecknoglobals // fixed sheet headers
var (
	dataHeader        = []any{"Barcode ID", "Type", "Data", "Generated At"}
	renderErrorHeader = []any{"Barcode ID", "Type", "Data", "Error"}
)

// Bundler implements ports.ArtifactBundler.
type Bundler struct{}

func NewBundler() *Bundler {
	return &Bundler{}
}

// Bundle builds the archive in memory. The manifest lists every generated record in
// generation order, including records whose image could not be rendered; those are
// also listed on the Render_Errors sheet.
func (b *Bundler) Bundle(a ports.Artifacts) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeEntry(zw, ManifestName, func(w io.Writer) error { return writeManifest(w, a) }); err != nil {
		return nil, err
	}

	for _, r := range a.Records {
		img, ok := a.Images[r.ID()]
		if !ok {
			continue
		}
		if err := writeEntry(zw, ImageDir+r.ID()+".png", func(w io.Writer) error {
			_, err := w.Write(img)
			return err
		}); err != nil {
			return nil, err
		}
	}

	if err := writeEntry(zw, InvoiceName, func(w io.Writer) error { return writeInvoice(w, a) }); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, write func(io.Writer) error) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err = write(w); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func writeManifest(w io.Writer, a ports.Artifacts) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return err
	}

	rows := make([][]any, 0, len(a.Records))
	for _, r := range a.Records {
		rows = append(rows, []any{r.ID(), r.Symbology().Key(), r.Payload(), r.GeneratedAt().Format(time.RFC3339)})
	}
	if err := streamSheet(f, DataSheet, dataHeader, rows); err != nil {
		return err
	}

	if len(a.Failures) > 0 {
		if _, err := f.NewSheet(RenderErrorSheet); err != nil {
			return err
		}
		failures := make([][]any, 0, len(a.Failures))
		for _, fail := range a.Failures {
			cause := ""
			if fail.Cause != nil {
				cause = fail.Cause.Error()
			}
			failures = append(failures, []any{fail.RecordID, fail.Symbology, fail.Payload, cause})
		}
		if err := streamSheet(f, RenderErrorSheet, renderErrorHeader, failures); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func streamSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	if err = sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeInvoice(w io.Writer, a ports.Artifacts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newInvoiceDTO(a.Invoice))
}
