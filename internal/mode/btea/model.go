// ABOUTME: Bubble Tea model hosting the pledge page on a headless engine
// ABOUTME: Messages become engine key events; the engine's last frame is the view

package btea

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pledgeboard/pledge-tui/internal/app"
	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/internal/log"
	"github.com/pledgeboard/pledge-tui/pkg/tui"
)

// SettingsMsg carries reloaded settings into the program.
type SettingsMsg struct {
	Settings *config.Settings
}

// shared holds state that must survive Model value copies.
// Bubble Tea copies the model on each Update; the engine and the page
// live behind this pointer.
type shared struct {
	ui   *tui.TUI
	page *app.App
	quit bool
}

// Model is the root Bubble Tea model.
type Model struct {
	sh            *shared
	width, height int
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// New creates a model around a headless engine of the given size.
// The status line takes one row, so the engine gets height-1.
func New(width, height int) Model {
	return Model{
		sh:     &shared{ui: tui.New(io.Discard, width, max(1, height-1))},
		width:  width,
		height: height,
	}
}

// UI returns the engine the page is built on.
func (m Model) UI() *tui.TUI { return m.sh.ui }

// Attach sets the page shown by the model.
func (m Model) Attach(page *app.App) {
	m.sh.page = page
	m.sh.ui.Flush()
}

// Quit makes the next Update end the program. It is meant to be the
// page's quit callback, which runs inside Update.
func (m Model) Quit() { m.sh.quit = true }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ui := m.sh.ui
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		ui.SetSize(msg.Width, max(1, msg.Height-1))
	case tea.KeyMsg:
		for _, k := range translateKey(msg) {
			ui.HandleKey(k)
		}
	case tea.MouseMsg:
		if k, ok := translateMouse(msg); ok {
			ui.HandleKey(k)
		}
	case tea.BlurMsg:
		ui.HandleKey(keyFocusOut)
	case tea.FocusMsg:
		ui.HandleKey(keyFocusIn)
	case SettingsMsg:
		if m.sh.page != nil && msg.Settings != nil {
			m.sh.page.Apply(msg.Settings)
			log.Info("btea: settings reloaded")
		}
	default:
		return m, nil
	}

	ui.Flush()
	if m.sh.quit {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	lines := m.sh.ui.Frame()
	_, h := m.sh.ui.Size()
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n" + m.status()
}

func (m Model) status() string {
	text := " bubbletea"
	if m.sh.page != nil {
		p := m.sh.page.Pledge()
		if p.TierID != "" {
			text += fmt.Sprintf(" · %s in %s", p.TierID, p.Currency)
		}
	}
	if m.width > 0 {
		return statusStyle.MaxWidth(m.width).Render(text)
	}
	return statusStyle.Render(text)
}
