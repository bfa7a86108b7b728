package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/premiumerp/dashboard-gateway/internal/api/handler"
	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors:
// {success:false, message, errors, status}.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
	Status  int    `json:"status"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Passes identity-backend envelopes through with their message, field
//     errors and original status (0 for transport failures).
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpCode, resp := resolveError(err, log, c)
		_ = c.JSON(httpCode, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Validation failures carry a field->messages map for form display.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{
			Message: "The given data was invalid.",
			Errors:  ve.Fields,
			Status:  http.StatusUnprocessableEntity,
		}
	}

	// Identity backend envelopes keep their own status in the body; a
	// transport failure (status 0) surfaces as 502 on the wire.
	var env *ports.EnvelopeError
	if errors.As(err, &env) {
		httpCode := env.Status
		if httpCode == 0 || httpCode == http.StatusOK {
			httpCode = http.StatusBadGateway
		}
		return httpCode, errorResponse{Message: env.Message, Errors: env.Errors, Status: env.Status}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message), Status: he.Code}
	}

	// Known domain errors → deterministic HTTP codes.
	if code, ok := domainStatus(err); ok {
		return code, errorResponse{Message: err.Error(), Status: code}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}
}

func domainStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrVariantNotFound),
		errors.Is(err, domain.ErrColorNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrVariantUnavailable),
		errors.Is(err, domain.ErrNoProductSelected),
		errors.Is(err, domain.ErrStepIncomplete),
		errors.Is(err, domain.ErrConfigurationPartial):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}
