package order

import (
	"errors"
	"fmt"
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxQuantity bounds the number of codes a single order may request.
const MaxQuantity = 100_000

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a batch of codes ordered by a customer. It owns the
// processing lifecycle and the monetary amounts computed at creation time.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer
//   - Symbology is a catalog value and quantity is within [1, MaxQuantity]
//   - Amounts are non-negative and final = base + tax
//   - Status transitions follow Status rules
//   - updatedAt >= createdAt and never decreases
type Order struct {
	id            kernel.UUID
	customer      Customer
	symbology     catalog.Symbology
	quantity      int
	baseAmount    decimal.Decimal
	taxAmount     decimal.Decimal
	finalAmount   decimal.Decimal
	status        Status
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time

	// events are status changes not yet published
	events []StatusChanged

	isConstructed bool
}

// Snapshot is the full persisted state of an order, used by adapters to store and
// restore the aggregate.
type Snapshot struct {
	ID            kernel.UUID
	Customer      Customer
	Symbology     catalog.Symbology
	Quantity      int
	BaseAmount    decimal.Decimal
	TaxAmount     decimal.Decimal
	FinalAmount   decimal.Decimal
	Status        Status
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder creates a pending, unpaid order. The final amount is derived as base + tax.
//
// Example:
//
//	customer, _ := order.NewCustomer(details)
//	o, err := order.NewOrder(kernel.NewUUID(), customer, catalog.QRCode, 100,
//	    decimal.NewFromInt(15000), decimal.NewFromInt(2700), time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customer Customer,
	symbology catalog.Symbology,
	quantity int,
	baseAmount, taxAmount decimal.Decimal,
	now time.Time,
) (*Order, error) {
	now = now.UTC()
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setSymbology(symbology),
		o.setQuantity(quantity),
		o.setAmounts(baseAmount, taxAmount, baseAmount.Add(taxAmount)),
	); err != nil {
		return nil, err
	}

	o.record(Unknown, Pending, now)
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. No events are recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomer(s.Customer),
		o.setSymbology(s.Symbology),
		o.setQuantity(s.Quantity),
		o.setAmounts(s.BaseAmount, s.TaxAmount, s.FinalAmount),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
		validateTimestamps(s.CreatedAt, s.UpdatedAt),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.paymentStatus = s.PaymentStatus
	o.createdAt = s.CreatedAt.UTC()
	o.updatedAt = s.UpdatedAt.UTC()
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Symbology() catalog.Symbology { return o.symbology }
func (o *Order) Quantity() int { return o.quantity }
func (o *Order) BaseAmount() decimal.Decimal { return o.baseAmount }
func (o *Order) TaxAmount() decimal.Decimal { return o.taxAmount }
func (o *Order) FinalAmount() decimal.Decimal { return o.finalAmount }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Snapshot returns the persisted state of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:            o.id,
		Customer:      o.customer,
		Symbology:     o.symbology,
		Quantity:      o.quantity,
		BaseAmount:    o.baseAmount,
		TaxAmount:     o.taxAmount,
		FinalAmount:   o.finalAmount,
		Status:        o.status,
		PaymentStatus: o.paymentStatus,
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
	}
}

// StartProcessing moves a pending order to processing. Any other status yields a
// StatusConflictError, so an order is never processed twice.
func (o *Order) StartProcessing(at time.Time) error {
	return o.transition(Status.StartProcessing, Pending, at)
}

// Complete moves a processing order to completed.
func (o *Order) Complete(at time.Time) error {
	return o.transition(Status.Complete, Processing, at)
}

// Fail moves a processing order to failed.
func (o *Order) Fail(at time.Time) error {
	return o.transition(Status.Fail, Processing, at)
}

// PullEvents returns the recorded, unpublished status changes and clears them.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) transition(next func(Status) (Status, error), expected Status, at time.Time) error {
	newStatus, err := next(o.status)
	if err != nil {
		return errs.NewStatusConflictErrorWithCause(o.id.String(), o.status.String(), expected.String(), err)
	}

	from := o.status
	o.status = newStatus
	o.touch(at)
	o.record(from, newStatus, o.updatedAt)
	return nil
}

// touch advances updatedAt without ever moving it backwards.
func (o *Order) touch(at time.Time) {
	at = at.UTC()
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
}

func (o *Order) record(from, to Status, at time.Time) {
	o.events = append(o.events, StatusChanged{OrderID: o.id, From: from, To: to, At: at})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setSymbology(symbology catalog.Symbology) error {
	if err := symbology.Validate(); err != nil {
		return err
	}
	o.symbology = symbology
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setAmounts(base, tax, final decimal.Decimal) error {
	if base.IsNegative() || tax.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("base %s and tax %s must not be negative", base, tax),
		)
	}
	if !base.Add(tax).Equal(final) {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("final %s is not base %s + tax %s", final, base, tax),
		)
	}
	o.baseAmount = base
	o.taxAmount = tax
	o.finalAmount = final
	return nil
}

func validateTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"updated_at",
			fmt.Errorf("%s is before created_at %s", updatedAt.Format(time.RFC3339), createdAt.Format(time.RFC3339)),
		)
	}
	return nil
}
