package handler

import (
	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/handler/grpc"
	"github.com/MKhiriev/umay/internal/handler/http"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a handler per configured address. db backs the gRPC
// health status.
func NewHandlers(services *service.Services, db grpc.Pinger, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		httpCfg := http.Config{
			RequestTimeout: cfg.Server.RequestTimeout,
			MaxUploadSize:  cfg.Storage.Files.MaxUploadSize,
		}
		// MinIO serves its own objects
		if cfg.Storage.Minio.Endpoint == "" {
			httpCfg.MediaDir = cfg.Storage.Files.MediaDir
		}
		handlers.HTTP = http.NewHandler(services, httpCfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(db, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
