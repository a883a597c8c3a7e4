package http

import (
	"errors"
	"net/http"

	"codeorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an application error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStatusConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an ErrorResponse. Store failures and unexpected errors are
// logged and reported with fallback instead of their internal detail.
func (s *Server) writeError(c echo.Context, err error, fallback string) error {
	code := statusFor(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), fallback,
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		if !errors.Is(err, errs.ErrRenderFailed) {
			message = fallback
		}
	}

	return c.JSON(code, ErrorResponse{Code: code, Message: message})
}
