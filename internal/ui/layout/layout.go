// Package layout draws the frame around every screen: a header with the
// current stage and timer, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width the exam palette moves behind a toggle.
	CompactWidthThreshold = 110
)

const (
	brand     = "GATE Exam"
	hintGap   = "   "
	barInset  = 2
	borderPad = 4
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	return key + " " + desc
}

func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

func IsTooSmall(width, height int) bool { return width < MinWidth || height < MinHeight }

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader draws the brand on the left, the screen title centred and
// status (the exam clock) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-borderPad, 0)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(strings.Repeat(" ", barInset) + brand)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	// Centre the title over the whole bar, not the space between the sides.
	side := max(lipgloss.Width(left), lipgloss.Width(right)) + 1
	midWidth := max(inner-2*side, lipgloss.Width(mid))
	row := lipgloss.PlaceHorizontal(side, lipgloss.Left, left) +
		lipgloss.PlaceHorizontal(midWidth, lipgloss.Center, mid) +
		lipgloss.PlaceHorizontal(side, lipgloss.Right, right)
	return bar(width, row)
}

// RenderFooter draws the key hints. Hints that do not fit in width are
// dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	room := width - borderPad - barInset
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", barInset))
	used := 0
	for i, h := range hints {
		part := h.render()
		w := lipgloss.Width(part)
		if i > 0 {
			w += len(hintGap)
		}
		if used+w > room && used > 0 {
			break
		}
		if i > 0 {
			b.WriteString(hintGap)
		}
		b.WriteString(part)
		used += w
	}
	return bar(width, b.String())
}

// RenderFrame stacks header, body and footer, sizing the body to fill
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// FormatClock renders seconds as H:MM:SS, or M:SS under an hour.
// Negative values clamp to zero.
func FormatClock(secs int) string {
	secs = max(secs, 0)
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
