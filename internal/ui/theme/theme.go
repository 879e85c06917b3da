package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: guard blue with signal colors for verdicts and warnings.
var (
	Primary      = lipgloss.Color("#3B82F6") // Guard Blue
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Warning      = lipgloss.Color("#EAB308") // Amber
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15") // Shield Gold
	ArcadeCyan   = lipgloss.Color("#22D3EE") // Scanner Cyan
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	CardTitle = lipgloss.NewStyle().
			Foreground(ArcadeCyan).
			Bold(true)

	EmailCard = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Accent).
			Padding(0, 1)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)
)

// StrengthColor returns the meter color for a password strength score.
func StrengthColor(strength, max int) lipgloss.Style {
	switch {
	case strength >= max:
		return lipgloss.NewStyle().Background(Success)
	case strength >= max-1:
		return lipgloss.NewStyle().Background(Warning)
	case strength > 0:
		return lipgloss.NewStyle().Background(Error)
	}
	return lipgloss.NewStyle().Background(Border)
}

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonEnabled = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)
