package http

import (
	"net/http"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/service"
)

type Handler struct {
	services *service.Services

	// files serves stored objects under /files when objects live on the
	// local disk. It is nil for S3.
	files http.Handler

	cfg config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, files http.Handler, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		files:    files,
		cfg:      cfg,
		logger:   logger,
	}
}
