package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps validation errors and known domain errors to deterministic codes.
//   - Surfaces backend business-rule rejections with their detail verbatim.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Client-side validation failures: the call never left the process.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error()
	}

	// Auth rejections force re-login regardless of where they surfaced.
	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized, "session rejected by backend, log in again"
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired, log in again"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrChallengeExpired):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNotEnrolled):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Backend business-rule rejection: surface the detail verbatim.
	var be *domain.BackendError
	if errors.As(err, &be) {
		return http.StatusBadGateway, be.UserMessage()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
