package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"codeorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order is 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record missing")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: order, ID is: 123 (cause: record missing)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100000)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100000, err.Max)
		assert.Equal(t, "value is out of range: 0 is quantity, min value is 1, max value is 100000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("text", "hello\nworld", 0, 10, errors.New("a\nb"))

		assert.Contains(t, err.Error(), "hello world")
		assert.Contains(t, err.Error(), "(cause: a b)")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("name")

	assert.Equal(t, "value is required: name", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("name", errors.New("blank"))
	assert.Equal(t, "value is required: name (cause: blank)", withCause.Error())
}

func TestStatusConflictError(t *testing.T) {
	err := errs.NewStatusConflictError("42", "completed", "pending")

	assert.Equal(t, "status conflict: 42 is completed, expected pending", err.Error())
	require.ErrorIs(t, err, errs.ErrStatusConflict)
}

func TestRenderFailedError(t *testing.T) {
	t.Run("without record", func(t *testing.T) {
		err := errs.NewRenderFailedErrorWithCause("ean13", "EAN13abc", errors.New("not numeric"))

		assert.Equal(t, `render failed: "EAN13abc" is not encodable as ean13 (cause: not numeric)`, err.Error())
		require.ErrorIs(t, err, errs.ErrRenderFailed)
	})

	t.Run("attributed to record", func(t *testing.T) {
		base := errs.NewRenderFailedError("upc", "UPC1")
		err := base.ForRecord("UPC1")

		assert.Empty(t, base.RecordID)
		assert.Equal(t, "UPC1", err.RecordID)
		assert.Equal(t, `render failed: record UPC1: "UPC1" is not encodable as upc`, err.Error())
	})
}

func TestStoreUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewStoreUnavailableErrorWithCause("orders.get", cause)

	assert.Equal(t, "store unavailable: orders.get (cause: connection refused)", err.Error())
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.Equal(t, "store unavailable: orders.list", errs.NewStoreUnavailableError("orders.list").Error())
}

func TestIsValidation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"required", errs.NewValueIsRequiredError("a"), true},
		{"invalid", errs.NewValueIsInvalidError("a"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("a", 1, 2, 3), true},
		{"joined", errors.Join(errors.New("x"), errs.NewValueIsInvalidError("a")), true},
		{"wrapped", fmt.Errorf("create: %w", errs.NewValueIsRequiredError("a")), true},
		{"not found", errs.NewObjectNotFoundError("a", 1), false},
		{"store", errs.NewStoreUnavailableError("a"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.IsValidation(tc.err))
		})
	}
}
