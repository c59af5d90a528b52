// Package screen declares what the router needs from each stage of the
// app. The frame (header and footer) is drawn by the app, so screens only
// render their body.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
)

type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body into width x height cells.
	View(width, height int) string

	// Title is shown centred in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right of the header, e.g. with the exam clock.
type StatusProvider interface {
	Status() string
}
