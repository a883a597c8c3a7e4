// Package render encodes code payloads into PNG images with boombuler/barcode.
// Everything happens in memory; nothing is written to disk.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/pkg/errs"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
)

const (
	matrixModulePx    = 10
	matrixQuietZone   = 5
	linearModulePx    = 2
	linearBarHeightPx = 100
	linearQuietZone   = 10

	maxQRBytes      = 2953
	maxCode128Chars = 80
	maxCode39Chars  = 43
)

// Options sets the image geometry. Zero fields take the defaults above.
type Options struct {
	MatrixModulePx    int
	MatrixQuietZone   int
	LinearModulePx    int
	LinearBarHeightPx int
	LinearQuietZone   int
}

// Renderer implements ports.CodeRenderer.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer with the given geometry.
func NewRenderer(opts Options) *Renderer {
	if opts.MatrixModulePx <= 0 {
		opts.MatrixModulePx = matrixModulePx
	}
	if opts.MatrixQuietZone <= 0 {
		opts.MatrixQuietZone = matrixQuietZone
	}
	if opts.LinearModulePx <= 0 {
		opts.LinearModulePx = linearModulePx
	}
	if opts.LinearBarHeightPx <= 0 {
		opts.LinearBarHeightPx = linearBarHeightPx
	}
	if opts.LinearQuietZone <= 0 {
		opts.LinearQuietZone = linearQuietZone
	}
	return &Renderer{opts: opts}
}

// Render validates payload for symbology, encodes it and returns PNG bytes.
// Any failure is an errs.RenderFailedError naming symbology and payload.
func (r *Renderer) Render(payload string, symbology catalog.Symbology) ([]byte, error) {
	bc, err := encode(payload, symbology)
	if err != nil {
		return nil, errs.NewRenderFailedErrorWithCause(symbology.Key(), payload, err)
	}

	var img image.Image
	if symbology.IsMatrix() {
		img, err = r.layout(bc, r.opts.MatrixModulePx, bc.Bounds().Dy()*r.opts.MatrixModulePx,
			r.opts.MatrixQuietZone*r.opts.MatrixModulePx)
	} else {
		img, err = r.layout(bc, r.opts.LinearModulePx, r.opts.LinearBarHeightPx,
			r.opts.LinearQuietZone*r.opts.LinearModulePx)
	}
	if err != nil {
		return nil, errs.NewRenderFailedErrorWithCause(symbology.Key(), payload, err)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, errs.NewRenderFailedErrorWithCause(symbology.Key(), payload, err)
	}
	return buf.Bytes(), nil
}

func encode(payload string, symbology catalog.Symbology) (barcode.Barcode, error) {
	switch symbology {
	case catalog.QRCode:
		if payload == "" || len(payload) > maxQRBytes {
			return nil, fmt.Errorf("payload must be 1..%d bytes, got %d", maxQRBytes, len(payload))
		}
		return qr.Encode(payload, qr.M, qr.Auto)
	case catalog.DataMatrix:
		if err := printableASCII(payload, 0); err != nil {
			return nil, err
		}
		return datamatrix.Encode(payload)
	case catalog.Code128:
		if err := printableASCII(payload, maxCode128Chars); err != nil {
			return nil, err
		}
		return code128.Encode(payload)
	case catalog.Code39:
		if err := printableASCII(payload, maxCode39Chars); err != nil {
			return nil, err
		}
		return code39.Encode(payload, false, true)
	case catalog.EAN13:
		if err := digits(payload, 12, 13); err != nil {
			return nil, err
		}
		return ean.Encode(payload)
	case catalog.UPCA:
		if err := digits(payload, 11, 12); err != nil {
			return nil, err
		}
		return ean.Encode("0" + payload)
	case catalog.Unknown:
		return nil, errors.New("symbology is not set")
	default:
		return nil, fmt.Errorf("%d is not a valid symbology", symbology)
	}
}

// layout scales the barcode to module size and places it on a white canvas with a
// quiet zone of quiet pixels on every side.
func (r *Renderer) layout(bc barcode.Barcode, modulePx, heightPx, quiet int) (image.Image, error) {
	scaled, err := barcode.Scale(bc, bc.Bounds().Dx()*modulePx, heightPx)
	if err != nil {
		return nil, err
	}

	b := scaled.Bounds()
	canvas := image.NewGray(image.Rect(0, 0, b.Dx()+2*quiet, b.Dy()+2*quiet))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(canvas, b.Add(image.Pt(quiet, quiet)), scaled, b.Min, draw.Src)
	return canvas, nil
}

func printableASCII(payload string, maxLen int) error {
	if payload == "" {
		return errors.New("payload is empty")
	}
	if maxLen > 0 && len(payload) > maxLen {
		return fmt.Errorf("payload is %d characters, at most %d allowed", len(payload), maxLen)
	}
	for i := 0; i < len(payload); i++ {
		if c := payload[i]; c < 0x20 || c > 0x7e {
			return fmt.Errorf("byte %#x at %d is not printable ASCII", c, i)
		}
	}
	return nil
}

func digits(payload string, lengths ...int) error {
	if strings.Trim(payload, "0123456789") != "" {
		return errors.New("payload must contain digits only")
	}
	for _, n := range lengths {
		if len(payload) == n {
			return nil
		}
	}
	return fmt.Errorf("payload has %d digits, want one of %v", len(payload), lengths)
}
