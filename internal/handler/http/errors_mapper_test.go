package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	fieldErr := &validators.FieldError{Field: "title", Message: "Title is required"}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"field error", fieldErr, http.StatusBadRequest, "Title is required"},
		{"wrapped field error", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, fieldErr), http.StatusBadRequest, "Title is required"},
		{"not sortable", store.ErrNotSortable, http.StatusBadRequest, store.ErrNotSortable.Error()},
		{"wrong credentials", service.ErrWrongCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"invalid token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, msgUnauthorized},
		{"blocked", fmt.Errorf("submit: %w", service.ErrIPBlocked), http.StatusForbidden, msgBlocked},
		{"rate limited", &service.RateLimitError{}, http.StatusTooManyRequests, msgRateLimited},
		{"unknown slot", fmt.Errorf("%w: logo", service.ErrUnknownSlot), http.StatusNotFound, "unknown file slot: logo"},
		{"not found", fmt.Errorf("error getting skills x: %w", store.ErrNotFound), http.StatusNotFound, msgNotFound},
		{"already exists", store.ErrAlreadyExists, http.StatusConflict, msgAlreadyExists},
		{"upload failed", fmt.Errorf("%w: timeout", service.ErrUploadFailed), http.StatusInternalServerError, msgUploadFailed},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := statusFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}
