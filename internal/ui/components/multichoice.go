package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// OptionLabels are the letters shown next to options.
var OptionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionLabel returns the letter for option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(OptionLabels) {
		return OptionLabels[i]
	}
	return strconv.Itoa(i + 1)
}

// OptionList is the option selector for MCQ and MSQ questions. MCQ options
// draw as radio buttons, MSQ options as checkboxes.
type OptionList struct {
	Cursor int
	n      int
}

// NewOptionList creates a list for n options with the cursor on the first.
func NewOptionList(n int) OptionList {
	return OptionList{n: n}
}

// Len returns the number of options.
func (o OptionList) Len() int { return o.n }

// Update moves the cursor and reports the option to toggle, or -1. Enter and
// space pick the option under the cursor. Digits 1..n pick directly and move
// the cursor there.
func (o OptionList) Update(msg tea.Msg) (OptionList, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || o.n == 0 {
		return o, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < o.n-1 {
			o.Cursor++
		}
	case "enter", "space", " ":
		return o, o.Cursor
	default:
		if d, err := strconv.Atoi(key); err == nil && d >= 1 && d <= o.n {
			o.Cursor = d - 1
			return o, o.Cursor
		}
	}
	return o, -1
}

// View renders the options for q with resp as the current response. In
// review mode no cursor is drawn, correct options are green and wrongly
// chosen options are red.
func (o OptionList) View(q exam.Question, resp exam.Answer, review bool, width int) string {
	var b strings.Builder
	for i, opt := range q.Options {
		key := strconv.Itoa(i)
		chosen := resp.Contains(key)

		mark := "( )"
		if q.Type == exam.MSQ {
			mark = "[ ]"
		}
		if chosen {
			mark = "(•)"
			if q.Type == exam.MSQ {
				mark = "[x]"
			}
		}

		prefix := "  "
		if !review && i == o.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s) %s", prefix, mark, OptionLabel(i), opt)

		style := theme.Unselected
		switch {
		case review && q.CorrectAnswer.Contains(key):
			style = theme.Correct
		case review && chosen:
			style = theme.Incorrect
		case review:
			style = theme.Skipped
		case i == o.Cursor:
			style = theme.Selected
		case chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if width > 0 {
			style = style.Width(width)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// FormatResponse renders a response for display: option letters for MCQ and
// MSQ, the literal for NAT.
func FormatResponse(q exam.Question, a exam.Answer) string {
	if a.IsEmpty() {
		return "-"
	}
	if !q.Type.HasOptions() {
		return a.Value()
	}
	vals := a.Values()
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if i, err := strconv.Atoi(v); err == nil {
			out = append(out, OptionLabel(i))
		} else {
			out = append(out, v)
		}
	}
	return strings.Join(out, ", ")
}
