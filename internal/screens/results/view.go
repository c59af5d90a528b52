package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
	"github.com/reddycharan348/Gate-Exam/internal/ui/components"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

func renderSummary(a *analysis.Analysis, width int) string {
	cw := components.ContentWidth(width)
	var sections []string

	pct := 0.0
	if a.TotalPossible > 0 {
		pct = a.Score / a.TotalPossible * 100
	}
	score := lipgloss.NewStyle().Foreground(theme.PercentColor(pct)).Bold(true).
		Render(fmt.Sprintf("%.2f / %g", a.Score, a.TotalPossible))
	stats := fmt.Sprintf("Accuracy %.2f%%   Attempted %d   Correct %d", a.Accuracy, a.Attempted, a.Correct)
	sections = append(sections, components.TitledCard("Score", score+"\n\n"+theme.Hint.Render(stats), cw))

	var rows strings.Builder
	for i, sp := range a.SectionPerformance {
		if i > 0 {
			rows.WriteString("\n\n")
		}
		bar := components.NewProgressBar(sp.Section, max(sp.Score, 0), sp.Total, cw-8)
		bar.LabelWidth = 22
		bar.Caption = fmt.Sprintf("%.2f / %g", sp.Score, sp.Total)
		rows.WriteString(bar.View())
		rows.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d attempted, %d correct", sp.Attempted, sp.Correct)))
		if sp.Feedback != "" {
			rows.WriteString("\n" + theme.Body.Width(cw-8).Render(sp.Feedback))
		}
	}
	sections = append(sections, components.TitledCard("Sections", rows.String(), cw))

	var insights string
	switch {
	case a.InsightsErr != nil:
		insights = theme.Incorrect.Render("AI insights unavailable.") + "\n" +
			theme.Hint.Width(cw-8).Render("Your score above is final. "+a.InsightsErr.Error())
	case len(a.ImprovementAreas) == 0:
		insights = theme.Hint.Render("No specific improvement areas.")
	default:
		var b strings.Builder
		for i, area := range a.ImprovementAreas {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(theme.Body.Width(cw - 8).Render("• " + area))
		}
		insights = b.String()
	}
	sections = append(sections, components.TitledCard("Focus Areas", insights, cw))

	return components.Center(lipgloss.JoinVertical(lipgloss.Left, sections...), width)
}

func renderAnswerKey(rep *scoring.Report, sess *exam.Session, width int) string {
	cw := components.ContentWidth(width)
	inner := cw - 8

	var cards []string
	for _, res := range rep.Results {
		q := res.Question

		var verdict string
		switch res.Outcome {
		case scoring.Correct:
			verdict = theme.Correct.Render(fmt.Sprintf("✓ Correct  %+g", scoring.Round2(res.Delta)))
		case scoring.Incorrect:
			verdict = theme.Incorrect.Render(fmt.Sprintf("✗ Incorrect  %+g", scoring.Round2(res.Delta)))
		default:
			verdict = theme.Skipped.Render("○ Skipped")
		}

		var b strings.Builder
		b.WriteString(theme.Label.Render(fmt.Sprintf("Q%d · %s · %s · %g", q.ID, q.Section, q.Type, q.Marks)))
		b.WriteString("   " + verdict + "\n\n")
		b.WriteString(theme.Body.Width(inner).Render(q.Text) + "\n\n")

		if q.Type.HasOptions() {
			b.WriteString(components.NewOptionList(len(q.Options)).View(q, sess.Response(q.ID), true, inner))
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Your answer: %s   Correct: %s",
			components.FormatResponse(q, res.Response), components.FormatResponse(q, q.CorrectAnswer))))
		if q.Explanation != "" {
			b.WriteString("\n\n" + theme.Body.Width(inner).Render(q.Explanation))
		}
		cards = append(cards, components.Card(b.String(), cw))
	}

	return components.Center(lipgloss.JoinVertical(lipgloss.Left, cards...), width)
}
