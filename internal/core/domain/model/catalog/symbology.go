// Package catalog defines the closed set of code symbologies that can be ordered,
// together with their display names and unit prices.
//
// Symbology is a closed enumeration: every switch over it is expected to be
// exhaustive, and the catalog key is only used at the boundaries (HTTP, storage)
// through ParseSymbology and Key.
package catalog

import (
	"fmt"
	"strings"

	"codeorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code every price in the catalog is expressed in.
const Currency = "INR"

// Symbology identifies a code format.
type Symbology int

const (
	// Unknown is the zero value and never a valid selection.
	Unknown Symbology = iota
	QRCode
	Code128
	EAN13
	UPCA
	Code39
	DataMatrix
)

type entry struct {
	key       string
	name      string
	unitPrice decimal.Decimal
	matrix    bool
}

//nolint:gochecknoglobals // immutable lookup table
var entries = map[Symbology]entry{
	QRCode:     {key: "qr_code", name: "QR Code", unitPrice: decimal.NewFromInt(150), matrix: true},
	Code128:    {key: "code128", name: "Code 128", unitPrice: decimal.NewFromInt(120)},
	EAN13:      {key: "ean13", name: "EAN-13", unitPrice: decimal.NewFromInt(140)},
	UPCA:       {key: "upc", name: "UPC-A", unitPrice: decimal.NewFromInt(140)},
	Code39:     {key: "code39", name: "Code 39", unitPrice: decimal.NewFromInt(120)},
	DataMatrix: {key: "datamatrix", name: "Data Matrix", unitPrice: decimal.NewFromInt(180), matrix: true},
}

// All returns every orderable symbology in catalog order.
func All() []Symbology {
	return []Symbology{QRCode, Code128, EAN13, UPCA, Code39, DataMatrix}
}

// ParseSymbology resolves a catalog key such as "qr_code" or "code128".
// Keys are matched exactly.
func ParseSymbology(key string) (Symbology, error) {
	for _, s := range All() {
		if entries[s].key == key {
			return s, nil
		}
	}
	if key == "" {
		return Unknown, errs.NewValueIsRequiredError("symbology")
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("symbology", fmt.Errorf("%q is not a catalog key", key))
}

// Validate returns a validation error for Unknown and out-of-range values.
func (s Symbology) Validate() error {
	if _, ok := entries[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("symbology", fmt.Errorf("%d is not a valid symbology", s))
	}
	return nil
}

// Key returns the catalog key, or "unknown" for invalid values.
func (s Symbology) Key() string {
	if e, ok := entries[s]; ok {
		return e.key
	}
	return "unknown"
}

// String implements fmt.Stringer using the catalog key.
func (s Symbology) String() string {
	return s.Key()
}

// Tag is the uppercased key used as the prefix of generated code identifiers.
func (s Symbology) Tag() string {
	return strings.ToUpper(s.Key())
}

// DisplayName returns the human-readable name, e.g. "EAN-13".
func (s Symbology) DisplayName() string {
	return entries[s].name
}

// UnitPrice returns the price of a single code in Currency.
func (s Symbology) UnitPrice() decimal.Decimal {
	return entries[s].unitPrice
}

// IsMatrix reports whether the symbology is a 2-D matrix code.
func (s Symbology) IsMatrix() bool {
	return entries[s].matrix
}
