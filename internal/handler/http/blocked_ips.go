package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listBlockedIPs(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.services.BlockedIPService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "handler.listBlockedIPs")
		return
	}

	if blocked == nil {
		blocked = []models.BlockedIP{}
	}
	utils.WriteJSON(w, blocked, http.StatusOK)
}

// blockIP answers 200 with the entry whether or not the address was
// already blocked.
func (h *Handler) blockIP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BlockIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info().Err(err).Msg(msgInvalidJSON)
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	adminID, _ := utils.GetAdminIDFromContext(ctx)

	blocked, created, err := h.services.BlockedIPService.Block(ctx, req, adminID)
	if err != nil {
		writeServiceError(w, r, err, "handler.blockIP")
		return
	}

	log.Info().Str("ip", blocked.IP).Bool("created", created).Msg("ip blocked")
	utils.WriteJSON(w, blocked, http.StatusOK)
}

func (h *Handler) unblockIP(w http.ResponseWriter, r *http.Request) {
	if err := h.services.BlockedIPService.Unblock(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "handler.unblockIP")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unblockByIP(w http.ResponseWriter, r *http.Request) {
	if err := h.services.BlockedIPService.UnblockByIP(r.Context(), chi.URLParam(r, "ip")); err != nil {
		writeServiceError(w, r, err, "handler.unblockByIP")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
