package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/ui/components"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

const paletteColumns = 5

func (s *ExamScreen) View(width, height int) string {
	if s.confirm != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.confirm.View(width))
	}

	if !layout.IsCompactWidth(width) {
		side := s.renderPalette()
		qw := width - lipgloss.Width(side) - 2
		return lipgloss.JoinHorizontal(lipgloss.Top, s.renderQuestion(qw), "  ", side)
	}
	if s.showPalette {
		return components.Center(s.renderPalette(), width)
	}
	return s.renderQuestion(width)
}

func (s *ExamScreen) renderQuestion(width int) string {
	q := s.sess.Current()
	if q == nil {
		return theme.Hint.Render("No questions.")
	}
	inner := width - 6

	var b strings.Builder

	st := s.sess.Status(q.ID)
	meta := fmt.Sprintf("Question %d of %d  ·  %s  ·  %s  ·  %s",
		s.sess.CurrentIndex()+1, s.sess.Len(), q.Section, q.Type, marksLabel(q.Marks))
	b.WriteString(theme.Label.Render(meta))
	if st.IsMarked() {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Review).Render("⚑ marked"))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Width(inner).Render(q.Text) + "\n\n")

	switch {
	case q.Type.HasOptions():
		if q.Type == exam.MSQ {
			b.WriteString(theme.Hint.Render("Select all that apply.") + "\n")
		}
		b.WriteString(s.options.View(*q, s.sess.Response(q.ID), false, inner))
	default:
		b.WriteString(theme.Hint.Render("Numerical answer:") + "\n")
		b.WriteString(s.input.View() + "\n")
	}

	if s.gotoMode {
		b.WriteString("\n" + theme.Selected.Render(fmt.Sprintf("Go to question: %s_", s.gotoBuf)) + "\n")
	}
	if s.notice != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.notice) + "\n")
	}

	return theme.Card.Width(width).Render(b.String())
}

func (s *ExamScreen) renderPalette() string {
	ids := make([]int, s.sess.Len())
	for i, q := range s.sess.Questions {
		ids[i] = q.ID
	}

	grid := components.Palette{Columns: paletteColumns}.View(ids, s.sess.CurrentIndex(), s.sess.Status)

	legend := components.Legend(s.sess.StatusCounts(), "\n")

	return theme.Card.Render(theme.Label.Render("Questions") + "\n\n" + grid + "\n\n" + legend)
}

func marksLabel(m float64) string {
	if m == 1 {
		return "1 mark"
	}
	return fmt.Sprintf("%g marks", m)
}
