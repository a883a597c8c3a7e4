// Package errs provides standardized error types for the order processing service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types grouped by the fault they describe:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: client input
//     that fails validation (see IsValidation)
//   - ObjectNotFoundError: an identifier that does not resolve to a stored object
//   - StatusConflictError: a lifecycle transition attempted from the wrong state
//   - RenderFailedError: a code payload that cannot be encoded under its symbology
//   - StoreUnavailableError: the record store failed to serve a request
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the error
//
// Callers distinguish client faults from server faults with errors.Is against the
// sentinels instead of matching messages.
package errs
