// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/umay/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the terminal interface the app drives.
type UI interface {
	// LoginFlow blocks until a staff member signs in or quits.
	LoginFlow(ctx context.Context) (models.Account, error)
	// MainLoop shows the register until the user quits or logs out.
	MainLoop(ctx context.Context, account models.Account) (logout bool, err error)
	// Refresh asks the running main loop to reload its data.
	Refresh(ctx context.Context)
}
