// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal client for maternity-ward staff:
// sign-in, register search, record details and ward statistics.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	mu      sync.Mutex
	program *tea.Program
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errNoServices
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// LoginFlow shows the sign-in screen until a staff member logs in or quits.
func (t *TUI) LoginFlow(ctx context.Context) (models.Account, error) {
	model := NewLoginModel(ctx, t.services.AuthService)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.Account{}, err
	}

	result, ok := finalModel.(*LoginModel)
	if !ok {
		return models.Account{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Account{}, ErrUserQuit
	}

	t.logger.Info().Int64("account_id", result.account.ID).Msg("signed in")
	return result.account, nil
}

// MainLoop runs the register screens for account. It reports logout=true
// when the user logged out or the session expired.
func (t *TUI) MainLoop(ctx context.Context, account models.Account) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, account, t.buildInfo)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	t.setProgram(program)
	defer t.setProgram(nil)

	finalModel, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return false, err
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}

// Refresh asks the running main loop to reload its data. It does nothing
// while no main loop is on screen.
func (t *TUI) Refresh(context.Context) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(RefreshMsg{})
	}
}

func (t *TUI) setProgram(p *tea.Program) {
	t.mu.Lock()
	t.program = p
	t.mu.Unlock()
}
