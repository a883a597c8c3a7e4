package order

import (
	"fmt"

	"codeorders/internal/pkg/errs"
)

// PaymentStatus tracks payment for an order. Order processing never changes it;
// it is reserved for a payment-capture integration.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentPending: "pending",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// ParsePaymentStatus converts the persisted representation back into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
