package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// ProgressBar displays a horizontal bar, used for section scores and exam
// completion.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    float64
	Caption    string
	Color      color.Color
	Width      int
}

// NewProgressBar creates a bar for value out of total. A zero total draws an
// empty bar.
func NewProgressBar(label string, value, total float64, width int) ProgressBar {
	p := 0.0
	if total > 0 {
		p = value / total
	}
	return ProgressBar{
		Label:   label,
		Percent: p,
		Caption: fmt.Sprintf("%d%%", int(p*100+0.5)),
		Color:   theme.PercentColor(p * 100),
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth).MaxWidth(p.LabelWidth)
		}
		result += style.Render(p.Label) + "  "
	}

	caption := ""
	if p.Caption != "" {
		caption = "  " + p.Caption
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(caption)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if caption != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	}
	return result
}
