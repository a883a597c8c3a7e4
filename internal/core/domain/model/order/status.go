package order

import (
	"fmt"

	"codeorders/internal/pkg/errs"
)

// Status represents the processing state of an order.
//
// State transitions:
//
//	Pending ──> Processing ──┬──> Completed
//	                         └──> Failed
//
// Completed and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Processing
	Completed
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Failed:     "failed",
	}
}

// ParseStatus converts the persisted representation back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted, lowercase name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// StartProcessing transitions Pending -> Processing.
func (s Status) StartProcessing() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start processing", s.String()),
		)
	}
	return Processing, nil
}

// Complete transitions Processing -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Processing {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// Fail transitions Processing -> Failed.
func (s Status) Fail() (Status, error) {
	if s != Processing {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}
	return Failed, nil
}
