package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/umay/internal/logger"
)

// ServiceName is reported next to the overall ("") status.
const ServiceName = "umay.Records"

const pingTimeout = 3 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler is the gRPC health endpoint. The status is SERVING while the
// database answers pings and NOT_SERVING otherwise.
type Handler struct {
	db     Pinger
	health *health.Server

	logger *logger.Logger
}

func NewHandler(db Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		db:     db,
		health: health.NewServer(),
		logger: logger,
	}
}

// Register attaches the health service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Check pings the database once and publishes the result.
func (h *Handler) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.Check").Msg("database is unreachable")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch repeats Check every interval until ctx is done.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	h.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING to every watcher ahead of a graceful stop.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
