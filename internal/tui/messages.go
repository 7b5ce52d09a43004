package tui

import (
	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/models"
)

// RefreshMsg asks the main loop to reload what is on screen.
type RefreshMsg struct{}

type loginResultMsg struct {
	account models.Account
	err     error
}

type recordsLoadedMsg struct {
	records []models.BirthRecord
	err     error
}

type dashboardLoadedMsg struct {
	dashboard adapter.Dashboard
	err       error
}

type versionLoadedMsg struct {
	version string
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
