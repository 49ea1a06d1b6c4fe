package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/go-chi/chi/v5"
)

// submitContact accepts the public contact form. Blocked callers get 403
// whatever they send and callers over the message limit get 429 with
// Retry-After; neither creates a message.
func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ip := utils.ClientIP(r)

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		blocked, lookupErr := h.services.BlockedIPService.IsBlocked(r.Context(), ip)
		switch {
		case lookupErr != nil:
			writeServiceError(w, r, lookupErr, "handler.submitContact")
		case blocked:
			writeBlocked(w, r, ip)
		default:
			log.Info().Err(err).Msg(msgInvalidJSON)
			utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		}
		return
	}

	msg, err := h.services.ContactService.Submit(r.Context(), ip, req)

	var rateErr *service.RateLimitError
	switch {
	case err == nil:
		utils.WriteJSON(w, msg, http.StatusCreated)
	case errors.Is(err, service.ErrIPBlocked):
		writeBlocked(w, r, ip)
	case errors.As(err, &rateErr):
		secs := rateErr.RetryAfterSeconds()
		log.Info().Str("ip", ip).Int("retry_after", secs).Msg("contact message rate limited")
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		utils.WriteJSON(w, models.RateLimitResponse{Error: msgRateLimited, RetryAfter: secs}, http.StatusTooManyRequests)
	default:
		writeServiceError(w, r, err, "handler.submitContact")
	}
}

func writeBlocked(w http.ResponseWriter, r *http.Request, ip string) {
	logger.FromRequest(r).Info().Str("ip", ip).Msg("contact message from blocked ip rejected")
	utils.WriteJSON(w, models.BlockedResponse{Error: msgBlocked, Blocked: true}, http.StatusForbidden)
}

func (h *Handler) listContactMessages(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	messages, err := h.services.ContactService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "handler.listContactMessages")
		return
	}

	if messages == nil {
		messages = []models.ContactMessage{}
	}
	utils.WriteJSON(w, messages, http.StatusOK)
}

func (h *Handler) getContactMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.services.ContactService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "handler.getContactMessage")
		return
	}

	utils.WriteJSON(w, msg, http.StatusOK)
}

func (h *Handler) updateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Info().Err(err).Msg(msgInvalidJSON)
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	msg, err := h.services.ContactService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "handler.updateContactStatus")
		return
	}

	utils.WriteJSON(w, msg, http.StatusOK)
}

func (h *Handler) deleteContactMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ContactService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "handler.deleteContactMessage")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.services.ContactService.UnreadCount(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "handler.unreadCount")
		return
	}

	utils.WriteJSON(w, models.UnreadCountResponse{Unread: n}, http.StatusOK)
}
