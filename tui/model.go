package tui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gridsift/app"
	"gridsift/app/interfaces"
)

type mode int

const (
	modeView mode = iota
	modeFilter
	modeJump
)

// Model is the bubbletea model for the data browser. All dataset and view
// state lives in the App; the model only keeps presentation state (cursor,
// selected column, input widgets) and re-renders from App.View().
type Model struct {
	app *app.App

	view *interfaces.View

	ready       bool
	width       int
	height      int
	currentMode mode

	cursor      int // row index within the current page
	selectedCol int // column index for sort/filter actions

	filterInput textinput.Model
	jumpInput   textinput.Model

	notice  string
	lastErr error
}

// New creates a TUI model over the given application state.
func New(a *app.App) *Model {
	fi := textinput.New()
	fi.Placeholder = "Filter text..."
	fi.CharLimit = 156
	fi.Width = 40

	ji := textinput.New()
	ji.Placeholder = "Page number..."
	ji.CharLimit = 8
	ji.Width = 12

	m := &Model{
		app:         a,
		filterInput: fi,
		jumpInput:   ji,
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	log.Println("gridsift: tui initialised")
	return nil
}

// refresh pulls a fresh view from the app and clamps presentation state.
func (m *Model) refresh() {
	view, err := m.app.View()
	if err != nil {
		m.lastErr = err
		return
	}
	m.lastErr = nil
	m.view = view

	if m.selectedCol >= len(view.Headers) {
		m.selectedCol = len(view.Headers) - 1
	}
	if m.selectedCol < 0 {
		m.selectedCol = 0
	}
	if m.cursor >= len(view.Rows) {
		m.cursor = len(view.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentMode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeJump:
		return m.handleJumpKey(msg)
	default:
		return m.handleViewModeKey(msg)
	}
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "enter":
		if m.filterInput.Focused() {
			column := m.selectedColumnName()
			if err := m.app.SetFilter(column, m.filterInput.Value()); err != nil {
				m.lastErr = err
			}
			m.currentMode = modeView
			m.filterInput.Blur()
			m.cursor = 0
			m.refresh()
		}
		return m, cmd
	case "esc":
		m.currentMode = modeView
		m.filterInput.Blur()
		return m, cmd
	default:
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "enter":
		if m.jumpInput.Focused() {
			var page int
			if _, err := fmt.Sscanf(m.jumpInput.Value(), "%d", &page); err == nil {
				m.app.SetPage(page)
			}
			m.currentMode = modeView
			m.jumpInput.Blur()
			m.cursor = 0
			m.refresh()
		}
		return m, cmd
	case "esc":
		m.currentMode = modeView
		m.jumpInput.Blur()
		return m, cmd
	default:
		m.jumpInput, cmd = m.jumpInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		if m.selectedCol > 0 {
			m.selectedCol--
		}
	case "right", "l":
		if m.view != nil && m.selectedCol < len(m.view.Headers)-1 {
			m.selectedCol++
		}
	case "down", "j":
		if m.view != nil && m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "s", "enter":
		m.app.ToggleSort(m.selectedColumnName())
		m.refresh()

	case "f", "/":
		m.currentMode = modeFilter
		m.filterInput.SetValue(m.currentFilterValue())
		m.filterInput.Focus()

	case "F":
		m.app.ClearFilters()
		m.cursor = 0
		m.refresh()

	case "pgdown", "]", "n":
		if err := m.app.ChangePage(1); err != nil {
			m.lastErr = err
		}
		m.cursor = 0
		m.refresh()
	case "pgup", "[", "p":
		if err := m.app.ChangePage(-1); err != nil {
			m.lastErr = err
		}
		m.cursor = 0
		m.refresh()

	case "g":
		m.currentMode = modeJump
		m.jumpInput.SetValue("")
		m.jumpInput.Focus()

	case "tab":
		m.app.CycleTab(1)
		m.cursor = 0
		m.selectedCol = 0
		m.refresh()
	case "shift+tab":
		m.app.CycleTab(-1)
		m.cursor = 0
		m.selectedCol = 0
		m.refresh()

	case "x":
		tab := m.app.GetActiveTab()
		if tab != nil {
			m.app.CloseTab(tab.ID)
			m.cursor = 0
			m.selectedCol = 0
			m.refresh()
			if m.app.GetActiveTab() == nil {
				return m, tea.Quit
			}
			m.notice = "closed " + tab.FileName
		}

	case "e":
		path, err := m.app.Export()
		switch {
		case err != nil:
			m.lastErr = err
		case path == "":
			m.notice = "nothing to export"
		default:
			m.notice = fmt.Sprintf("exported to %s", path)
		}

	case "c":
		count, err := m.app.CopyPageToClipboard()
		if err != nil {
			m.lastErr = err
		} else if count == 0 {
			m.notice = "nothing to copy"
		} else {
			m.notice = fmt.Sprintf("copied %d rows", count)
		}

	case "r":
		tab := m.app.GetActiveTab()
		if tab != nil {
			if err := m.app.ReloadTab(tab.ID); err != nil {
				m.lastErr = err
			} else {
				m.notice = "reloaded"
				m.cursor = 0
				m.selectedCol = 0
			}
			m.refresh()
		}
	}

	return m, nil
}

// selectedColumnName resolves the selected column index to its header name.
func (m *Model) selectedColumnName() string {
	if m.view == nil || m.selectedCol < 0 || m.selectedCol >= len(m.view.Headers) {
		return ""
	}
	return m.view.Headers[m.selectedCol]
}

// currentFilterValue returns the active needle for the selected column, so
// the filter box opens pre-filled for editing.
func (m *Model) currentFilterValue() string {
	if m.view == nil {
		return ""
	}
	return m.view.Filters[m.selectedColumnName()]
}
