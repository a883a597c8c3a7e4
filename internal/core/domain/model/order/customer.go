package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"
)

const (
	maxCustomerFieldLength = 256
	minPhoneDigits         = 7
)

// ErrCustomerIsNotConstructed is returned when a Customer was not built by NewCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// CustomerDetails is the raw customer input. TaxNumber (GST registration) and Region
// (state) are optional; Region selects the tax treatment.
type CustomerDetails struct {
	Name         string
	Surname      string
	Organization string
	Country      string
	Address      string
	Phone        string
	Email        string
	TaxNumber    string
	Region       string
}

// Customer is the validated, immutable customer attached to an order.
type Customer struct {
	details CustomerDetails
	guard   guard.ConstructorGuard
}

// NewCustomer trims and validates the details. All violations are reported together.
func NewCustomer(details CustomerDetails) (Customer, error) {
	d := CustomerDetails{
		Name:         strings.TrimSpace(details.Name),
		Surname:      strings.TrimSpace(details.Surname),
		Organization: strings.TrimSpace(details.Organization),
		Country:      strings.TrimSpace(details.Country),
		Address:      strings.TrimSpace(details.Address),
		Phone:        strings.TrimSpace(details.Phone),
		Email:        strings.TrimSpace(details.Email),
		TaxNumber:    strings.TrimSpace(details.TaxNumber),
		Region:       strings.TrimSpace(details.Region),
	}

	if err := errors.Join(
		requireField("name", d.Name),
		optionalField("surname", d.Surname),
		requireField("organization", d.Organization),
		requireField("country", d.Country),
		requireField("address", d.Address),
		validatePhone(d.Phone),
		validateEmail(d.Email),
		optionalField("tax number", d.TaxNumber),
		optionalField("region", d.Region),
	); err != nil {
		return Customer{}, err
	}

	return Customer{details: d, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Details returns a copy of the customer details.
func (c Customer) Details() CustomerDetails {
	return c.details
}

// Region returns the region used for tax treatment; empty when not supplied.
func (c Customer) Region() string {
	return c.details.Region
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return optionalField(name, value)
}

func optionalField(name, value string) error {
	if n := len(value); n > maxCustomerFieldLength {
		return errs.NewValueIsOutOfRangeError(name+" length", n, 0, maxCustomerFieldLength)
	}
	return nil
}

func validateEmail(email string) error {
	if err := requireField("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare address", email))
	}
	return nil
}

func validatePhone(phone string) error {
	if err := requireField("phone", phone); err != nil {
		return err
	}

	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune("+-() .", r):
		default:
			return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}
	if digits < minPhoneDigits {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%d digits, need at least %d", digits, minPhoneDigits))
	}
	return nil
}
