package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// Button is a styled button label.
type Button struct {
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ConfirmResult is the outcome of a key press on a Confirm dialog.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// Confirm is a yes/no dialog. Left/right move between the buttons, y and n
// answer directly and Esc always means no.
type Confirm struct {
	Prompt string
	Detail string
	Yes    string
	No     string

	yesFocused bool
}

// NewConfirm creates a dialog with the "No" button focused.
func NewConfirm(prompt, detail, yes, no string) Confirm {
	return Confirm{Prompt: prompt, Detail: detail, Yes: yes, No: no}
}

// Update handles a key and reports whether the dialog was answered.
func (c Confirm) Update(msg tea.Msg) (Confirm, ConfirmResult) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ConfirmPending
	}
	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		c.yesFocused = !c.yesFocused
	case "y", "Y":
		return c, ConfirmYes
	case "n", "N", "esc":
		return c, ConfirmNo
	case "enter":
		if c.yesFocused {
			return c, ConfirmYes
		}
		return c, ConfirmNo
	}
	return c, ConfirmPending
}

// View renders the dialog centred in width.
func (c Confirm) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	if c.Detail != "" {
		b.WriteString("\n\n" + theme.Hint.Render(c.Detail))
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		Button{Label: c.Yes, Active: c.yesFocused}.View(),
		"   ",
		Button{Label: c.No, Active: !c.yesFocused}.View(),
	)
	b.WriteString("\n\n" + buttons)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Dialog.Render(b.String()))
}
