// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the terminal client to talk
// to the UMAY server.
//
// [ServerAdapter] hides the REST API behind typed calls. Non-2xx responses are
// mapped by mapHTTPError to the sentinel errors in errors.go, wrapping the
// server's error message, so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client view of the UMAY HTTP API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token or "".
	Token() string

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, login, password string) (models.Account, error)

	// Me returns the account the stored token belongs to.
	Me(ctx context.Context) (models.Account, error)

	// ListRecords searches the register by patient name. An empty search
	// lists every record.
	ListRecords(ctx context.Context, search string) (models.RecordList, error)

	// Dashboard returns the register statistics and the newest records.
	Dashboard(ctx context.Context) (Dashboard, error)

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}

// Dashboard mirrors the /api/dashboard response.
type Dashboard struct {
	Stats  report.Statistics    `json:"stats"`
	Recent []models.BirthRecord `json:"recent"`
}
