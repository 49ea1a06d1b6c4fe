package adapter

import "errors"

var (
	ErrRequestFailed       = errors.New("webhook request failed")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("webhook rejected the secret")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("webhook not found")
	ErrTooManyRequests     = errors.New("webhook is rate limited")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// IsRetryable reports whether a failed call may succeed when repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRequestFailed) ||
		errors.Is(err, ErrTooManyRequests) ||
		errors.Is(err, ErrBadGateway) ||
		errors.Is(err, ErrInternalServerError)
}
