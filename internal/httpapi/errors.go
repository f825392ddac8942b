package httpapi

import (
	"context"
	"errors"
	"net/http"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps the error taxonomy to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, identity.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidProfileFile),
		errors.Is(err, domain.ErrCancelled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPassphraseRequired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrWrongPassphrase):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNoProfile):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCryptoUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
