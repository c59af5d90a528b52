package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// StatusColor returns the palette colour for a question status.
func StatusColor(s exam.Status) color.Color {
	switch s {
	case exam.StatusAnswered:
		return theme.Success
	case exam.StatusNotAnswered:
		return theme.Error
	case exam.StatusMarkedForReview:
		return theme.Review
	case exam.StatusMarkedAndAnswered:
		return theme.Accent
	default:
		return theme.Muted
	}
}

// Palette is the question navigation grid. Each cell shows a question number
// coloured by its status. The current question is bracketed.
type Palette struct {
	Columns int
}

// View renders cells for ids using status to colour them.
func (p Palette) View(ids []int, current int, status func(id int) exam.Status) string {
	cols := p.Columns
	if cols <= 0 {
		cols = 10
	}

	var b strings.Builder
	for i, id := range ids {
		cell := fmt.Sprintf(" %2d ", id)
		if i == current {
			cell = fmt.Sprintf("[%2d]", id)
		}
		style := lipgloss.NewStyle().Foreground(StatusColor(status(id)))
		if i == current {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(cell))
		if (i+1)%cols == 0 && i != len(ids)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Legend renders the status legend with counts, entries joined by sep.
func Legend(counts map[exam.Status]int, sep string) string {
	parts := make([]string, 0, len(exam.AllStatuses))
	for _, s := range exam.AllStatuses {
		dot := lipgloss.NewStyle().Foreground(StatusColor(s)).Render("■")
		parts = append(parts, dot+" "+theme.Hint.Render(fmt.Sprintf("%s %d", s.Label(), counts[s])))
	}
	return strings.Join(parts, sep)
}
