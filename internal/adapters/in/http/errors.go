package http

import (
	"errors"
	"net/http"

	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	reasonUnauthenticated = "Authentication credentials were not provided."
	reasonNotFound        = "Not found."
	reasonInternal        = "A server error occurred."
)

// statusOf maps an application error to the response status and reason.
func statusOf(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		reason, _ := errs.Reason(err)
		return http.StatusForbidden, reason
	case errors.Is(err, errs.ErrNotAcceptable):
		reason, _ := errs.Reason(err)
		return http.StatusNotAcceptable, reason
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, reasonNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &httpErr):
		if message, ok := httpErr.Message.(string); ok {
			return httpErr.Code, message
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, reasonInternal
	}
}

// NewErrorHandler renders every error returned by a handler or middleware as a
// Rejection. Internal errors are logged with the request id and never exposed.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, reason := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, Rejection{Reason: reason})
		}
		if writeErr != nil {
			logger.Warn("writing error response", zap.Error(writeErr))
		}
	}
}
