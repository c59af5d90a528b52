// Package theme holds the colours and lipgloss styles shared by every
// screen. The palette follows the online exam portal: navy chrome with one
// colour per question state.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Base colours.
var (
	Primary   = lipgloss.Color("#3B82F6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Muted     = lipgloss.Color("#475569")
	Border    = lipgloss.Color("#334155")
	BgCard    = lipgloss.Color("#1E293B")
	BgDark    = lipgloss.Color("#0F172A")
)

// Question state colours, also used for score deltas.
var (
	Success = lipgloss.Color("#22C55E") // answered, correct
	Error   = lipgloss.Color("#EF4444") // unanswered, incorrect
	Review  = lipgloss.Color("#A855F7") // marked for review
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Text styles.
var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Label    = fg(Secondary).Bold(true)
	Disabled = fg(Muted)
)

// Selection and grading.
var (
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
	Skipped    = fg(TextDim)
)

// Boxes and buttons.
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent).
		Padding(1, 3)

	ButtonActive   = fg(Text).Background(Primary).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
)

// ScoreColor colours a signed mark delta.
func ScoreColor(v float64) color.Color {
	switch {
	case v > 0:
		return Success
	case v < 0:
		return Error
	}
	return TextDim
}

// PercentColor grades a 0-100 percentage: 70 and up is good, under 40 is
// weak.
func PercentColor(p float64) color.Color {
	switch {
	case p >= 70:
		return Success
	case p >= 40:
		return Accent
	}
	return Error
}
