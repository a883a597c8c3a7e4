// Package tax holds the value objects describing how goods and services tax is applied
// to an order amount.
package tax

import (
	"fmt"

	"codeorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Treatment tells whether tax was split between central and state components
// (intra-state supply) or charged as a single integrated component (inter-state).
type Treatment int

const (
	TreatmentUnknown Treatment = iota
	// Split is CGST + SGST, applied when the customer is in the home region.
	Split
	// Integrated is IGST, applied to every other region, including an unknown one.
	Integrated
)

func (t Treatment) String() string {
	switch t {
	case Split:
		return "split"
	case Integrated:
		return "integrated"
	default:
		return "unknown"
	}
}

// Breakdown is the result of applying tax to a base amount.
//
// Invariants: Tax = CGST + SGST for Split, Tax = IGST for Integrated,
// and Total = Base + Tax.
type Breakdown struct {
	Base      decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CGST      decimal.Decimal
	SGST      decimal.Decimal
	IGST      decimal.Decimal
	Treatment Treatment
}

// Validate checks the arithmetic invariants of the breakdown.
func (b Breakdown) Validate() error {
	if !b.Base.Add(b.Tax).Equal(b.Total) {
		return errs.NewValueIsInvalidErrorWithCause("tax breakdown",
			fmt.Errorf("total %s is not base %s + tax %s", b.Total, b.Base, b.Tax))
	}

	switch b.Treatment {
	case Split:
		if !b.CGST.Add(b.SGST).Equal(b.Tax) || !b.IGST.IsZero() {
			return errs.NewValueIsInvalidErrorWithCause("tax breakdown",
				fmt.Errorf("cgst %s + sgst %s does not make up tax %s", b.CGST, b.SGST, b.Tax))
		}
	case Integrated:
		if !b.IGST.Equal(b.Tax) || !b.CGST.IsZero() || !b.SGST.IsZero() {
			return errs.NewValueIsInvalidErrorWithCause("tax breakdown",
				fmt.Errorf("igst %s does not make up tax %s", b.IGST, b.Tax))
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("tax breakdown",
			fmt.Errorf("%d is not a valid treatment", b.Treatment))
	}
	return nil
}
