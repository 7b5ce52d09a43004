package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/handler"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/server"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("umay-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Msg("keeping default log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.App.SeedAdmin {
		account, created, err := services.AuthService.SeedSuperAdmin(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("error seeding super-admin")
		}
		log.Info().Str("login", account.Login).Bool("created", created).Msg("super-admin is in place")
	}

	handlers, err := handler.NewHandlers(services, storages.DB, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
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
}
