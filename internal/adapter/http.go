package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST adapter for cfg.ServerURL. A URL
// without a scheme is taken as http.
func NewHTTPServerAdapter(cfg *config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login posts the credentials to /api/auth/login and keeps the bearer
// token from the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, login, password string) (models.Account, error) {
	var account models.Account

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"login": login, "password": password}).
		SetResult(&account).
		Post("/api/auth/login")
	if err != nil {
		return models.Account{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Account{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	h.logger.Debug().Int64("account_id", account.ID).Msg("logged in")
	return account, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.Account, error) {
	var account models.Account

	resp, err := h.authedRequest(ctx).SetResult(&account).Get("/api/me")
	if err != nil {
		return models.Account{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (h *httpServerAdapter) ListRecords(ctx context.Context, search string) (models.RecordList, error) {
	var list models.RecordList

	req := h.authedRequest(ctx).SetResult(&list)
	if criteria := (filter.Criteria{NameSubstring: strings.TrimSpace(search)}); !criteria.IsEmpty() {
		req.SetQueryParamsFromValues(criteria.Encode())
	}

	resp, err := req.Get("/api/records")
	if err != nil {
		return models.RecordList{}, fmt.Errorf("list records request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RecordList{}, err
	}

	return list, nil
}

func (h *httpServerAdapter) Dashboard(ctx context.Context) (Dashboard, error) {
	var dashboard Dashboard

	resp, err := h.authedRequest(ctx).SetResult(&dashboard).Get("/api/dashboard")
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return Dashboard{}, err
	}

	return dashboard, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
