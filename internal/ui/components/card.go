package components

import (
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// ContentWidth returns the width used for cards and question text inside a
// frame of the given width.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded card at width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// TitledCard renders a card with a bold title line above content.
func TitledCard(title, content string, cw int) string {
	return Card(theme.Label.Render(title)+"\n\n"+content, cw)
}

// Center places s horizontally in the middle of width.
func Center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
