package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, logger: logger}
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (models.Account, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := a.adapter.Login(ctx, login, password)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "*clientAuthService.Login").Str("login", login).Msg("login failed")
		return models.Account{}, mapAdapterError(err)
	}

	if account.Role == models.RoleUser {
		a.adapter.SetToken("")
		a.logger.Warn().Int64("account_id", account.ID).Msg("mama app account refused")
		return models.Account{}, policy.ErrForbidden
	}

	a.logger.Info().Int64("account_id", account.ID).Msg("logged in")
	return account, nil
}

func (a *clientAuthService) Logout() {
	a.adapter.SetToken("")
}

func (a *clientAuthService) ServerVersion(ctx context.Context) (string, error) {
	version, err := a.adapter.Version(ctx)
	return version, mapAdapterError(err)
}
