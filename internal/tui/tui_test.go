// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/models"
)

type fakeAuth struct {
	loginFn   func(ctx context.Context, login, password string) (models.Account, error)
	versionFn func(ctx context.Context) (string, error)
	logouts   int
}

func (f *fakeAuth) Login(ctx context.Context, login, password string) (models.Account, error) {
	return f.loginFn(ctx, login, password)
}

func (f *fakeAuth) Logout() { f.logouts++ }

func (f *fakeAuth) ServerVersion(ctx context.Context) (string, error) {
	if f.versionFn == nil {
		return "", nil
	}
	return f.versionFn(ctx)
}

type fakeRecords struct {
	listFn      func(ctx context.Context, search string) ([]models.BirthRecord, error)
	dashboardFn func(ctx context.Context) (adapter.Dashboard, error)
}

func (f *fakeRecords) List(ctx context.Context, search string) ([]models.BirthRecord, error) {
	return f.listFn(ctx, search)
}

func (f *fakeRecords) Dashboard(ctx context.Context) (adapter.Dashboard, error) {
	return f.dashboardFn(ctx)
}

var midwife = models.Account{ID: 1, Login: "aigul", FullName: "Айгуль Сагинтаева", Role: models.RoleMidwife}

func sampleRecords() []models.BirthRecord {
	return []models.BirthRecord{
		{ID: 3, PatientName: "Иванова Мария", BirthDate: "2026-10-02", BirthTime: "08:15", DeliveryMethod: "Естественные роды", ChildWeight: 3400, Gestosis: true},
		{ID: 2, PatientName: "Петрова Анна", BirthDate: "2026-10-01", BirthTime: "23:40", DeliveryMethod: "Кесарево сечение", ChildWeight: 2900},
	}
}

func newTestLoop(auth *fakeAuth, records *fakeRecords) mainLoopModel {
	services := &service.ClientServices{AuthService: auth, RecordService: records}
	return newMainLoopModel(context.Background(), services, midwife, models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc123"))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches into the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	loop, ok := next.(mainLoopModel)
	require.True(t, ok)
	return loop, cmd
}

func loaded(t *testing.T, m mainLoopModel, records []models.BirthRecord) mainLoopModel {
	t.Helper()
	m, _ = update(t, m, recordsLoadedMsg{records: records})
	return m
}

func TestLoginModel(t *testing.T) {
	t.Run("empty fields", func(t *testing.T) {
		m := NewLoginModel(context.Background(), &fakeAuth{})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Equal(t, "Логин и пароль обязательны", m.errMsg)
	})

	t.Run("successful sign-in quits", func(t *testing.T) {
		auth := &fakeAuth{loginFn: func(_ context.Context, login, password string) (models.Account, error) {
			assert.Equal(t, "aigul", login)
			assert.Equal(t, "secret", password)
			return midwife, nil
		}}
		m := NewLoginModel(context.Background(), auth)
		m.inputs[0].SetValue(" aigul ")
		m.inputs[1].SetValue("secret")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.True(t, m.submitting)

		_, cmd = m.Update(cmd())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, midwife, m.account)
		assert.False(t, m.quitByUser)
	})

	t.Run("rejected sign-in clears the password", func(t *testing.T) {
		m := NewLoginModel(context.Background(), &fakeAuth{})
		m.inputs[1].SetValue("secret")
		m.submitting = true

		_, cmd := m.Update(loginResultMsg{err: fmt.Errorf("wrap: %w", service.ErrWrongPassword)})
		assert.Nil(t, cmd)
		assert.False(t, m.submitting)
		assert.Equal(t, "Неверный логин или пароль", m.errMsg)
		assert.Empty(t, m.inputs[1].Value())
	})

	t.Run("esc quits by user", func(t *testing.T) {
		m := NewLoginModel(context.Background(), &fakeAuth{})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.True(t, m.quitByUser)
	})

	t.Run("tab cycles focus", func(t *testing.T) {
		m := NewLoginModel(context.Background(), &fakeAuth{})
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 1, m.focus)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 0, m.focus)
		m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		assert.Equal(t, 1, m.focus)
	})
}

func TestMainLoop_LoadAndNavigate(t *testing.T) {
	records := &fakeRecords{listFn: func(_ context.Context, search string) ([]models.BirthRecord, error) {
		assert.Empty(t, search)
		return sampleRecords(), nil
	}}
	m := newTestLoop(&fakeAuth{}, records)

	msgs := collect(m.cmdLoadRecords())
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.False(t, m.loading)
	assert.Len(t, m.records, 2)
	assert.Contains(t, m.View(), "Иванова Мария")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.idx)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenDetail, m.screen)
	assert.Equal(t, int64(2), m.current.ID)
	assert.Contains(t, m.View(), "Кесарево сечение")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenList, m.screen)
}

func TestMainLoop_Search(t *testing.T) {
	var searched []string
	records := &fakeRecords{listFn: func(_ context.Context, search string) ([]models.BirthRecord, error) {
		searched = append(searched, search)
		return sampleRecords()[:1], nil
	}}
	m := loaded(t, newTestLoop(&fakeAuth{}, records), sampleRecords())

	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.searching)

	m, _ = update(t, m, keyRunes("Иван"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "Иван", m.query)

	for _, msg := range collect(cmd) {
		m, _ = update(t, m, msg)
	}
	assert.Equal(t, []string{"Иван"}, searched)
	assert.Len(t, m.records, 1)

	// esc on the list drops the search
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.query)
	collect(cmd)
	assert.Equal(t, []string{"Иван", ""}, searched)
}

func TestMainLoop_CopySummary(t *testing.T) {
	var copied string
	original := writeClipboard
	t.Cleanup(func() { writeClipboard = original })
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}

	m := loaded(t, newTestLoop(&fakeAuth{}, &fakeRecords{}), sampleRecords())

	m, cmd := update(t, m, keyRunes("c"))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, service.RecordSummary(sampleRecords()[0]), copied)

	m, cmd = update(t, m, msgs[0])
	assert.NotNil(t, cmd)
	assert.Equal(t, "Скопировано в буфер обмена", m.status)

	m, _ = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.status)
}

func TestMainLoop_CopyFailureShowsOverlay(t *testing.T) {
	original := writeClipboard
	t.Cleanup(func() { writeClipboard = original })
	writeClipboard = func(string) error { return errors.New("no clipboard utility") }

	m := loaded(t, newTestLoop(&fakeAuth{}, &fakeRecords{}), sampleRecords())
	m, cmd := update(t, m, keyRunes("c"))
	m, _ = update(t, m, collect(cmd)[0])

	assert.True(t, m.showError)
	assert.Contains(t, m.View(), "no clipboard utility")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showError)
}

func TestMainLoop_Refresh(t *testing.T) {
	records := &fakeRecords{
		listFn: func(context.Context, string) ([]models.BirthRecord, error) {
			return sampleRecords()[1:], nil
		},
		dashboardFn: func(context.Context) (adapter.Dashboard, error) {
			return adapter.Dashboard{Stats: report.Statistics{Total: 1}}, nil
		},
	}

	t.Run("ignored while loading", func(t *testing.T) {
		m := newTestLoop(&fakeAuth{}, records)
		_, cmd := update(t, m, RefreshMsg{})
		assert.Nil(t, cmd)
	})

	t.Run("open record follows the reload", func(t *testing.T) {
		m := loaded(t, newTestLoop(&fakeAuth{}, records), sampleRecords())
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.Equal(t, int64(3), m.current.ID)

		m, cmd := update(t, m, RefreshMsg{})
		assert.True(t, m.loading)
		for _, msg := range collect(cmd) {
			m, _ = update(t, m, msg)
		}

		// record 3 is gone after the reload
		assert.Equal(t, screenList, m.screen)
		assert.Equal(t, "Запись больше недоступна", m.status)
		assert.Equal(t, 0, m.idx)
	})

	t.Run("stats screen reloads the dashboard", func(t *testing.T) {
		m := loaded(t, newTestLoop(&fakeAuth{}, records), sampleRecords())
		m.screen = screenStats

		m, cmd := update(t, m, RefreshMsg{})
		assert.True(t, m.statsLoading)
		for _, msg := range collect(cmd) {
			m, _ = update(t, m, msg)
		}
		assert.False(t, m.statsLoading)
		assert.Equal(t, 1, m.dashboard.Stats.Total)
	})
}

func TestMainLoop_ExpiredSessionLogsOut(t *testing.T) {
	auth := &fakeAuth{}
	m := newTestLoop(auth, &fakeRecords{})

	m, cmd := update(t, m, recordsLoadedMsg{err: fmt.Errorf("list: %w", service.ErrTokenIsExpiredOrInvalid)})
	require.NotNil(t, cmd)
	assert.True(t, m.logout)
	assert.Equal(t, 1, auth.logouts)
}

func TestMainLoop_Logout(t *testing.T) {
	auth := &fakeAuth{}
	m := loaded(t, newTestLoop(auth, &fakeRecords{}), nil)

	m, cmd := update(t, m, keyRunes("l"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.logout)
	assert.Equal(t, 1, auth.logouts)
}

func TestMainLoop_StatsAndInfo(t *testing.T) {
	auth := &fakeAuth{versionFn: func(context.Context) (string, error) { return "2.0.1", nil }}
	records := &fakeRecords{dashboardFn: func(context.Context) (adapter.Dashboard, error) {
		return adapter.Dashboard{Stats: report.Statistics{
			Total:        2,
			AvgBloodLoss: 350,
			ByGender:     []report.Bucket{{Label: "Мальчик", Count: 1, Percent: 50}, {Label: "Девочка", Count: 1, Percent: 50}},
		}}, nil
	}}
	m := loaded(t, newTestLoop(auth, records), sampleRecords())

	m, cmd := update(t, m, keyRunes("s"))
	assert.Equal(t, screenStats, m.screen)
	m, _ = update(t, m, collect(cmd)[0])
	view := m.View()
	assert.Contains(t, view, "Всего родов:         2")
	assert.Contains(t, view, "350 мл")
	assert.Contains(t, view, "Мальчик")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd = update(t, m, keyRunes("v"))
	assert.Equal(t, screenInfo, m.screen)
	m, _ = update(t, m, collect(cmd)[0])
	assert.Contains(t, m.View(), "Версия сервера: 2.0.1")
	assert.Contains(t, m.View(), "abc123")
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"wrong password", service.ErrWrongPassword, "Неверный логин или пароль"},
		{"forbidden", fmt.Errorf("x: %w", policy.ErrForbidden), "Доступ только для персонала роддома"},
		{"server down", errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "Отсутствует сеть или Сервер недоступен"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}

func TestRenderHelpers(t *testing.T) {
	assert.Equal(t, "Иван...", fitText("Иванова Мария", 7))
	assert.Equal(t, "abc", fitText("abc", 10))
	assert.Equal(t, "Нет данных", renderStats(adapter.Dashboard{}))
	assert.Equal(t, "Нет записей", renderRecordList(nil, 0))
	assert.Equal(t, "3.5", formatFloat(3.5))
	assert.Equal(t, "12", formatFloat(12))

	ordered := frequent([]report.Bucket{{Label: "a", Count: 1}, {Label: "b"}, {Label: "c", Count: 3}})
	require.Len(t, ordered, 2)
	assert.Equal(t, "c", ordered[0].Label)

	detail := renderRecordDetail(sampleRecords()[0])
	assert.Contains(t, detail, "• Гестоз")
	assert.True(t, strings.HasSuffix(detail, "Внесено:       -"))
}

func TestTUI(t *testing.T) {
	_, err := New(nil, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServices)

	ui, err := New(&service.ClientServices{}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	// no main loop on screen
	ui.Refresh(context.Background())
}
