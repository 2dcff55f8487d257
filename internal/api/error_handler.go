package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

// errorResponse is the canonical envelope for every failure the API emits.
type errorResponse struct {
	Message     string              `json:"message"`
	Status      int                 `json:"status"`
	OccurredAt  time.Time           `json:"occurredAt"`
	FieldErrors []domain.FieldError `json:"fieldErrors,omitempty"`
}

// NewHTTPErrorHandler returns the echo.HTTPErrorHandler that normalizes
// every fault into one envelope:
//   - domain.Fault kinds map to deterministic HTTP status codes.
//   - Echo's own errors (bind failures, router 404s) keep their codes.
//   - Anything else is logged internally and rendered as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Message:     msg,
			Status:      code,
			OccurredAt:  time.Now().UTC(),
			FieldErrors: fields,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []domain.FieldError) {
	var fault *domain.Fault
	if errors.As(err, &fault) {
		switch fault.Kind {
		case domain.KindValidation:
			return http.StatusBadRequest, fault.Message, fault.Fields
		case domain.KindUnauthenticated:
			return http.StatusUnauthorized, fault.Message, nil
		case domain.KindForbidden:
			return http.StatusForbidden, fault.Message, nil
		case domain.KindNotFound:
			return http.StatusNotFound, fault.Message, nil
		case domain.KindConflict:
			// Duplicate unique keys surface as a plain bad request.
			return http.StatusBadRequest, fault.Message, nil
		case domain.KindEmptyResult:
			return http.StatusNoContent, fault.Message, nil
		case domain.KindUnexpected:
			logUnhandled(err, log, c)
			return http.StatusInternalServerError, "internal server error", nil
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	logUnhandled(err, log, c)
	return http.StatusInternalServerError, "internal server error", nil
}

// logUnhandled records the real cause server-side; the response body never
// carries it.
func logUnhandled(err error, log zerolog.Logger, c echo.Context) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
