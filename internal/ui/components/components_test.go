package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestOptionListNavigation(t *testing.T) {
	o := NewOptionList(4)

	o, pick := o.Update(specialKey(tea.KeyDown))
	if o.Cursor != 1 || pick != -1 {
		t.Fatalf("after down: cursor=%d pick=%d", o.Cursor, pick)
	}
	o, _ = o.Update(specialKey(tea.KeyUp))
	o, _ = o.Update(specialKey(tea.KeyUp))
	if o.Cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", o.Cursor)
	}

	o, pick = o.Update(specialKey(tea.KeyEnter))
	if pick != 0 {
		t.Errorf("enter should pick cursor, got %d", pick)
	}

	o, pick = o.Update(keyPress('3'))
	if pick != 2 || o.Cursor != 2 {
		t.Errorf("digit 3: pick=%d cursor=%d", pick, o.Cursor)
	}

	_, pick = o.Update(keyPress('9'))
	if pick != -1 {
		t.Errorf("out of range digit should not pick, got %d", pick)
	}
}

func TestOptionListView(t *testing.T) {
	q := exam.Question{
		ID:            1,
		Type:          exam.MSQ,
		Options:       []string{"alpha", "beta", "gamma", "delta"},
		CorrectAnswer: exam.Multi("0", "2"),
	}
	o := NewOptionList(4)
	view := o.View(q, exam.Multi("1"), false, 0)

	for _, want := range []string{"[ ] A) alpha", "[x] B) beta", "▸ "} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	review := o.View(q, exam.Multi("1"), true, 0)
	if strings.Contains(review, "▸") {
		t.Error("review mode should not draw a cursor")
	}
}

func TestFormatResponse(t *testing.T) {
	mcq := exam.Question{Type: exam.MCQ, Options: []string{"a", "b", "c", "d"}}
	msq := exam.Question{Type: exam.MSQ, Options: []string{"a", "b", "c", "d"}}
	nat := exam.Question{Type: exam.NAT}

	tests := []struct {
		q    exam.Question
		a    exam.Answer
		want string
	}{
		{mcq, exam.Single("2"), "C"},
		{msq, exam.Multi("3", "0"), "D, A"},
		{nat, exam.Single("4.5"), "4.5"},
		{nat, exam.Answer{}, "-"},
	}
	for _, tt := range tests {
		if got := FormatResponse(tt.q, tt.a); got != tt.want {
			t.Errorf("FormatResponse(%s, %v) = %q, want %q", tt.q.Type, tt.a, got, tt.want)
		}
	}
}

func TestTextInputNumericFilter(t *testing.T) {
	ti := NewTextInput("answer", true, 12)
	for _, r := range "1a2.5" {
		ti, _ = ti.Update(keyPress(r))
	}
	if got := ti.Value(); got != "12.5" {
		t.Errorf("value = %q, want %q", got, "12.5")
	}
	if !ti.Valid() {
		t.Error("12.5 should be valid")
	}

	ti.SetValue("1-2")
	if ti.Valid() {
		t.Error("1-2 should not be valid")
	}
}

func TestConfirm(t *testing.T) {
	c := NewConfirm("Submit?", "", "Submit", "Cancel")

	_, res := c.Update(specialKey(tea.KeyEnter))
	if res != ConfirmNo {
		t.Errorf("default enter = %v, want ConfirmNo", res)
	}

	c, res = c.Update(specialKey(tea.KeyLeft))
	if res != ConfirmPending {
		t.Errorf("left = %v, want pending", res)
	}
	_, res = c.Update(specialKey(tea.KeyEnter))
	if res != ConfirmYes {
		t.Errorf("enter on yes = %v, want ConfirmYes", res)
	}

	_, res = c.Update(keyPress('y'))
	if res != ConfirmYes {
		t.Errorf("y = %v, want ConfirmYes", res)
	}
	_, res = c.Update(specialKey(tea.KeyEscape))
	if res != ConfirmNo {
		t.Errorf("esc = %v, want ConfirmNo", res)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Quit", Action: func() tea.Cmd { called = "quit"; return nil }},
	})
	if m.Selected != 1 || !m.AtTop() {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if called != "quit" {
		t.Errorf("called = %q, want quit", called)
	}

	m.Focused = false
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 2 {
		t.Error("unfocused menu should ignore keys")
	}
}

func TestPaletteAndLegend(t *testing.T) {
	status := func(id int) exam.Status {
		if id == 2 {
			return exam.StatusAnswered
		}
		return exam.StatusNotVisited
	}
	view := Palette{Columns: 2}.View([]int{1, 2, 3}, 1, status)
	if !strings.Contains(view, "[ 2]") {
		t.Errorf("current cell not bracketed:\n%s", view)
	}
	if strings.Count(view, "\n") != 1 {
		t.Errorf("expected two rows:\n%s", view)
	}

	legend := Legend(map[exam.Status]int{exam.StatusAnswered: 1, exam.StatusNotVisited: 2}, "  ")
	for _, want := range []string{"Answered 1", "Not visited 2"} {
		if !strings.Contains(legend, want) {
			t.Errorf("legend missing %q: %s", want, legend)
		}
	}
}

func TestProgressBarZeroTotal(t *testing.T) {
	p := NewProgressBar("Core", 0, 0, 40)
	if p.Percent != 0 || p.Caption != "0%" {
		t.Errorf("zero total: percent=%v caption=%q", p.Percent, p.Caption)
	}
	p = NewProgressBar("Core", 3, 4, 40)
	if p.Caption != "75%" {
		t.Errorf("caption = %q, want 75%%", p.Caption)
	}
}
