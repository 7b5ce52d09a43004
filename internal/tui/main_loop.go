package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/models"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenStats
	screenInfo
)

const statusTTL = 2 * time.Second

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

type mainLoopModel struct {
	ctx       context.Context
	services  *service.ClientServices
	account   models.Account
	buildInfo models.AppBuildInfo

	screen    screen
	search    textinput.Model
	searching bool
	query     string

	records []models.BirthRecord
	idx     int
	current models.BirthRecord
	loading bool
	spinner spinner.Model

	dashboard     adapter.Dashboard
	statsLoading  bool
	serverVersion string

	status       string
	showError    bool
	errorOverlay errorOverlayModel

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, account models.Account, buildInfo models.AppBuildInfo) mainLoopModel {
	search := textinput.New()
	search.Prompt = "Поиск: "
	search.Placeholder = "ФИО пациентки"
	search.CharLimit = 100
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainLoopModel{
		ctx:       ctx,
		services:  services,
		account:   account,
		buildInfo: buildInfo,
		search:    search,
		spinner:   s,
		loading:   true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadRecords(), m.spinner.Tick)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case RefreshMsg:
		if m.loading {
			return m, nil
		}
		m.loading = true
		cmds := []tea.Cmd{m.cmdLoadRecords()}
		if m.screen == screenStats {
			m.statsLoading = true
			cmds = append(cmds, m.cmdLoadDashboard())
		}
		return m, tea.Batch(cmds...)
	case recordsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleError(msg.err)
		}
		m.records = msg.records
		if m.idx >= len(m.records) {
			m.idx = len(m.records) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		if m.screen == screenDetail {
			return m.syncDetail()
		}
		return m, nil
	case dashboardLoadedMsg:
		m.statsLoading = false
		if msg.err != nil {
			return m.handleError(msg.err)
		}
		m.dashboard = msg.dashboard
		return m, nil
	case versionLoadedMsg:
		if msg.err == nil {
			m.serverVersion = msg.version
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			return m.handleError(msg.err)
		}
		m.status = "Скопировано в буфер обмена"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleError shows err in the overlay. An expired session ends the loop
// with logout so the login screen comes back.
func (m mainLoopModel) handleError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
		m.services.AuthService.Logout()
		m.logout = true
		return m, tea.Quit
	}
	m.showError = true
	m.errorOverlay.message = humanizeError(err)
	return m, nil
}

func (m mainLoopModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	switch m.screen {
	case screenDetail:
		return m.updateDetail(msg)
	case screenStats, screenInfo:
		switch {
		case key.Matches(msg, keys.esc):
			m.screen = screenList
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case m.screen == screenStats && key.Matches(msg, keys.reload):
			m.statsLoading = true
			return m, m.cmdLoadDashboard()
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m mainLoopModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.idx = 0
		m.loading = true
		return m, m.cmdLoadRecords()
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m mainLoopModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.records)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if r, ok := m.selected(); ok {
			m.current = r
			m.screen = screenDetail
		}
	case key.Matches(msg, keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.esc):
		if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			m.idx = 0
			m.loading = true
			return m, m.cmdLoadRecords()
		}
	case key.Matches(msg, keys.stats):
		m.screen = screenStats
		m.statsLoading = true
		return m, m.cmdLoadDashboard()
	case key.Matches(msg, keys.info):
		m.screen = screenInfo
		return m, m.cmdLoadVersion()
	case key.Matches(msg, keys.reload):
		if !m.loading {
			m.loading = true
			return m, m.cmdLoadRecords()
		}
	case key.Matches(msg, keys.copy):
		if r, ok := m.selected(); ok {
			return m, cmdCopyToClipboard(service.RecordSummary(r))
		}
	case key.Matches(msg, keys.logout):
		m.services.AuthService.Logout()
		m.logout = true
		return m, tea.Quit
	}
	return m, nil
}

func (m mainLoopModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenList
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.copy):
		return m, cmdCopyToClipboard(service.RecordSummary(m.current))
	}
	return m, nil
}

// syncDetail replaces the open record with its reloaded version. A record
// that disappeared from the register closes the detail screen.
func (m mainLoopModel) syncDetail() (tea.Model, tea.Cmd) {
	for i, r := range m.records {
		if r.ID == m.current.ID {
			m.current = r
			m.idx = i
			return m, nil
		}
	}
	m.screen = screenList
	m.status = "Запись больше недоступна"
	return m, cmdClearStatus()
}

func (m mainLoopModel) selected() (models.BirthRecord, bool) {
	if len(m.records) == 0 || m.idx < 0 || m.idx >= len(m.records) {
		return models.BirthRecord{}, false
	}
	return m.records[m.idx], true
}

func (m mainLoopModel) View() string {
	if m.showError {
		return appStyle.Render(m.errorOverlay.View())
	}

	var page string
	switch m.screen {
	case screenDetail:
		page = renderPage(titleStyle.Render("ЗАПИСЬ О РОДАХ"), renderRecordDetail(m.current), "c: копировать │ esc: назад")
	case screenStats:
		data := renderStats(m.dashboard)
		if m.statsLoading {
			data = m.spinner.View() + " Загрузка..."
		}
		page = renderPage(titleStyle.Render("СТАТИСТИКА"), data, "r: обновить │ esc: назад")
	case screenInfo:
		page = renderBuildInfoWindow(m.buildInfo, m.serverVersion)
	default:
		page = renderPage(m.listTitle(), m.listBody(),
			"enter: открыть │ /: поиск │ c: копировать │ s: статистика │ v: версия │ r: обновить │ l: сменить пользователя │ q: выход")
	}

	if m.status != "" {
		page += "\n\n  " + m.status
	}
	return appStyle.Render(page)
}

func (m mainLoopModel) listTitle() string {
	title := titleStyle.Render("UMAY · ЖУРНАЛ РОДОВ")
	if m.account.FullName != "" {
		title += "  " + helpStyle.Render(m.account.FullName)
	}
	if m.loading {
		title += "  " + m.spinner.View()
	}
	return title
}

func (m mainLoopModel) listBody() string {
	var b strings.Builder
	if m.searching || m.query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if m.loading && len(m.records) == 0 {
		b.WriteString("Загрузка...")
		return b.String()
	}

	b.WriteString(renderRecordList(m.records, m.idx))
	if len(m.records) > 0 {
		fmt.Fprintf(&b, "\n\nЗаписей: %d", len(m.records))
	}
	return b.String()
}

func (m mainLoopModel) cmdLoadRecords() tea.Cmd {
	ctx := m.ctx
	records := m.services.RecordService
	query := m.query

	return func() tea.Msg {
		list, err := records.List(ctx, query)
		return recordsLoadedMsg{records: list, err: err}
	}
}

func (m mainLoopModel) cmdLoadDashboard() tea.Cmd {
	ctx := m.ctx
	records := m.services.RecordService

	return func() tea.Msg {
		dashboard, err := records.Dashboard(ctx)
		return dashboardLoadedMsg{dashboard: dashboard, err: err}
	}
}

func (m mainLoopModel) cmdLoadVersion() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		version, err := auth.ServerVersion(ctx)
		return versionLoadedMsg{version: version, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
