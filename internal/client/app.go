package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/tui"
	"github.com/MKhiriev/umay/internal/workers"
	"github.com/MKhiriev/umay/models"
)

var _ Client = (*App)(nil)

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client services and ui are required")
	}

	refresh := workers.NewRefreshWorker(cfg.RefreshInterval, ui.Refresh, logger)

	return &App{
		services: services,
		ui:       ui,
		workers:  workers.New(refresh),
		logger:   logger,
	}, nil
}

// Run signs a staff member in and shows the register until they quit.
// Logging out returns to the sign-in screen.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		account, err := a.ui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}

		logout, err := a.mainLoop(ctx, account)
		if err != nil {
			return err
		}
		if !logout {
			a.services.AuthService.Logout()
			return nil
		}

		a.logger.Info().Int64("account_id", account.ID).Msg("logged out")
	}
}

func (a *App) mainLoop(ctx context.Context, account models.Account) (bool, error) {
	a.workers.Run(ctx)
	defer a.workers.Stop()

	logout, err := a.ui.MainLoop(ctx, account)
	if err != nil {
		return false, fmt.Errorf("main loop: %w", err)
	}
	return logout, nil
}
