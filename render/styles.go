package render

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#f97316") // orange
	ColorSuccess = lipgloss.Color("#9ece6a")
	ColorError   = lipgloss.Color("#f7768e")
	ColorMuted   = lipgloss.Color("#565f89")
	ColorFg      = lipgloss.Color("#c0caf5")
)

var (
	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Bold(true)

	RequiredStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorFg)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))
)
