package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// numericKeys are the characters a NAT answer can contain.
const numericKeys = "0123456789.-+eE"

// TextInput is the answer box for numerical answer type questions. With
// NumericOnly set, printable keys outside numericKeys are swallowed.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	MaxWidth    int
}

func NewTextInput(placeholder string, numericOnly bool, maxWidth int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if maxWidth > 0 {
		m.CharLimit = maxWidth
	}
	m.Focus()
	return TextInput{Model: m, NumericOnly: numericOnly, MaxWidth: maxWidth}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

// Accepts reports whether key may reach the input. Non-printable keys such
// as backspace and arrows always pass.
func (t TextInput) Accepts(key string) bool {
	return !t.NumericOnly || len(key) != 1 || strings.Contains(numericKeys, key)
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && !t.Accepts(k.String()) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string  { return t.Model.View() }
func (t TextInput) Value() string { return t.Model.Value() }

// SetValue loads a saved answer with the cursor at the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Valid reports whether the text is blank (no answer) or a number.
func (t TextInput) Valid() bool {
	v := strings.TrimSpace(t.Value())
	if v == "" {
		return true
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}
