package main

import (
	"fmt"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/client"
	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/tui"
	"github.com/MKhiriev/umay/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("umay-client", "").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewClientLogger("umay-client", cfg.LogPath)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services := service.NewClientServices(serverAdapter, log)

	ui, err := tui.New(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
