package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrStatusConflict    = errors.New("status conflict")
	ErrRenderFailed      = errors.New("render failed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// IsValidation reports whether err was caused by invalid client input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// sanitize keeps error messages on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports an identifier with no stored object behind it.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s is %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
	}
	return withCause(fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// StatusConflictError reports a state transition requested from a state that does not allow it.
type StatusConflictError struct {
	ID       any
	Actual   string
	Expected string
	Cause    error
}

func NewStatusConflictError(id any, actual, expected string) *StatusConflictError {
	return &StatusConflictError{ID: id, Actual: actual, Expected: expected}
}

func NewStatusConflictErrorWithCause(id any, actual, expected string, cause error) *StatusConflictError {
	return &StatusConflictError{ID: id, Actual: actual, Expected: expected, Cause: cause}
}

func (e *StatusConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, expected %s",
		ErrStatusConflict, sanitize(e.ID), e.Actual, e.Expected), e.Cause)
}

func (e *StatusConflictError) Unwrap() error {
	return ErrStatusConflict
}

// RenderFailedError reports a payload that could not be encoded as an image.
// RecordID is empty when the failure happened outside of a generated record.
type RenderFailedError struct {
	RecordID  string
	Symbology string
	Payload   string
	Cause     error
}

func NewRenderFailedError(symbology, payload string) *RenderFailedError {
	return &RenderFailedError{Symbology: symbology, Payload: payload}
}

func NewRenderFailedErrorWithCause(symbology, payload string, cause error) *RenderFailedError {
	return &RenderFailedError{Symbology: symbology, Payload: payload, Cause: cause}
}

// ForRecord returns a copy of the error attributed to the given record.
func (e *RenderFailedError) ForRecord(recordID string) *RenderFailedError {
	cp := *e
	cp.RecordID = recordID
	return &cp
}

func (e *RenderFailedError) Error() string {
	msg := fmt.Sprintf("%s: %q is not encodable as %s", ErrRenderFailed, sanitize(e.Payload), e.Symbology)
	if e.RecordID != "" {
		msg = fmt.Sprintf("%s: record %s: %q is not encodable as %s",
			ErrRenderFailed, e.RecordID, sanitize(e.Payload), e.Symbology)
	}
	return withCause(msg, e.Cause)
}

func (e *RenderFailedError) Unwrap() error {
	return ErrRenderFailed
}

// StoreUnavailableError reports a record store failure during Operation.
type StoreUnavailableError struct {
	Operation string
	Cause     error
}

func NewStoreUnavailableError(operation string) *StoreUnavailableError {
	return &StoreUnavailableError{Operation: operation}
}

func NewStoreUnavailableErrorWithCause(operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{Operation: operation, Cause: cause}
}

func (e *StoreUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStoreUnavailable, e.Operation), e.Cause)
}

func (e *StoreUnavailableError) Unwrap() error {
	return ErrStoreUnavailable
}
