// Package app is the root Bubble Tea model. It owns the screen router and
// draws the frame around whichever screen is active.
package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/screen"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	"github.com/reddycharan348/Gate-Exam/internal/screens/setup"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
)

type Options struct {
	Services *screens.Services
}

var (
	stackedHints = []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	rootHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
)

// Model starts on the setup screen.
type Model struct {
	router        *router.Router
	width, height int
}

func newModel(opts Options) Model {
	svc := opts.Services
	if svc == nil {
		svc = &screens.Services{}
	}
	return Model{router: router.New(setup.New(svc))}
}

func (m Model) Init() tea.Cmd { return m.router.Active().Init() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	// RenderFrame pads or clips the body to what the bars leave.
	body := m.router.View(m.width, max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0))
	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

func (m Model) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if h := p.KeyHints(); h != nil {
			return h
		}
	}
	if m.router.Depth() > 1 {
		return stackedHints
	}
	return rootHints
}

// Run shows the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(newModel(opts), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
