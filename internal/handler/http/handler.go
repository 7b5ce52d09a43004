package http

import (
	"time"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/service"
)

// Config holds transport settings of the HTTP handler.
type Config struct {
	// RequestTimeout bounds every request. Zero disables the limit.
	RequestTimeout time.Duration

	// MediaDir is served under /media/ when uploads are kept on disk.
	MediaDir string

	// MaxUploadSize limits multipart uploads in bytes.
	MaxUploadSize int64
}

type Handler struct {
	services *service.Services
	cfg      Config

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg Config, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
}
