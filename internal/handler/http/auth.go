package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info().Err(err).Msg(msgInvalidJSON)
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeServiceError(w, r, err, "handler.login")
		return
	}

	w.Header().Set("Authorization", "Bearer "+resp.Token)
	utils.WriteJSON(w, resp, http.StatusOK)
}
