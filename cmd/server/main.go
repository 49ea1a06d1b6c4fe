package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/portfolio-cms/internal/adapter"
	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/handler"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/server"
	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/workers"
	"github.com/MKhiriev/portfolio-cms/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger("portfolio-cms")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	objects, err := store.NewObjectStorage(ctx, cfg.Storage.Objects, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating object storage")
	}

	storages := store.NewStorages(db, objects)

	var frontend adapter.FrontendAdapter
	if cfg.Adapter.RevalidationURL != "" {
		frontend, err = adapter.NewHTTPFrontendAdapter(cfg.Adapter, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating front-end adapter")
		}
	}

	backgroundWorkers := workers.NewWorkers(frontend, cfg.Workers, log)

	var revalidator service.Revalidator
	if backgroundWorkers.Revalidation != nil {
		revalidator = backgroundWorkers.Revalidation
	}

	services, err := service.NewServices(storages, revalidator, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err := services.UploadService.EnsureBuckets(ctx); err != nil {
		log.Fatal().Err(err).Msg("error creating buckets")
	}
	if err := services.AuthService.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("error creating administrator")
	}

	var files http.Handler
	if fs, ok := objects.(store.FileServer); ok {
		files = fs.Handler()
	}

	handlers, err := handler.NewHandlers(services, files, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers.Run(ctx)

	if err := srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
		stop()
	}

	backgroundWorkers.Wait()
	log.Info().Msg("stopped")
}

func printBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
