package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
)

// errorStatus maps a sentinel to a status. An empty message means the
// error text itself is shown to the caller.
type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatusMap is checked in order; the first sentinel matched with
// [errors.Is] wins.
var errorStatusMap = []errorStatus{
	{validators.ErrInvalidInput, http.StatusBadRequest, ""},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, ""},
	{store.ErrNotSortable, http.StatusBadRequest, ""},

	{service.ErrWrongCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, msgUnauthorized},

	{service.ErrIPBlocked, http.StatusForbidden, msgBlocked},
	{service.ErrRateLimited, http.StatusTooManyRequests, msgRateLimited},

	{service.ErrUnknownSlot, http.StatusNotFound, ""},
	{store.ErrNotFound, http.StatusNotFound, msgNotFound},
	{store.ErrAlreadyExists, http.StatusConflict, msgAlreadyExists},

	{service.ErrUploadFailed, http.StatusInternalServerError, msgUploadFailed},
}

func statusFromError(err error) (int, string) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			if e.message != "" {
				return e.status, e.message
			}
			var fe *validators.FieldError
			if errors.As(err, &fe) {
				return e.status, fe.Message
			}
			return e.status, err.Error()
		}
	}
	return http.StatusInternalServerError, msgInternalError
}

// writeServiceError logs err and writes the matching JSON error reply.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	log := logger.FromRequest(r)

	status, message := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}
