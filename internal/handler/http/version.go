package http

import (
	"net/http"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// health reports 503 while the database cannot be reached.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := healthResponse{
		Status:  "ok",
		Version: h.services.AppInfoService.GetAppVersion(ctx),
	}

	if err := h.services.AppInfoService.Health(ctx); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "handler.health").Msg("health check failed")
		resp.Status = "unavailable"
		utils.WriteJSON(w, resp, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
