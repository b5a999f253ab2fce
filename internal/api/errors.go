package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"github.com/phrazzld/notes-api/internal/service"
	"github.com/phrazzld/notes-api/internal/service/auth"
)

// Messages for failures that do not come with a service message.
const (
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
	msgUnexpected   = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation failures and missing records share 400
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotFound):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// A token was presented but cannot be used
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
// Service errors carry their own message; anything unexpected gets a generic one.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	if msg, ok := service.Message(err); ok {
		return msg
	}

	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
