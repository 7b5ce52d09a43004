package service

import (
	"context"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/models"
)

// ClientAuthService signs the terminal client in and out.
type ClientAuthService interface {
	// Login authenticates a staff member. Accounts of the Mama app are
	// refused: the client shows clinical data.
	Login(ctx context.Context, login, password string) (models.Account, error)

	// Logout forgets the bearer token.
	Logout()

	// ServerVersion returns the version the server reports.
	ServerVersion(ctx context.Context) (string, error)
}

// ClientRecordService reads the register for the terminal client.
type ClientRecordService interface {
	// List searches the register by patient name, newest first.
	List(ctx context.Context, search string) ([]models.BirthRecord, error)

	// Dashboard returns the register statistics and the newest records.
	Dashboard(ctx context.Context) (adapter.Dashboard, error)
}
