package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/joules19/chowmate-web-sub002/render"
	"github.com/joules19/chowmate-web-sub002/survey"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(render.ColorPrimary).
			Bold(true).
			MarginBottom(1)

	incentiveStyle = lipgloss.NewStyle().
			Foreground(render.ColorSuccess).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorSuccess).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(render.ColorError).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(render.ColorError).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(render.ColorError).
			PaddingLeft(1)

	frameStyle = lipgloss.NewStyle().Padding(1, 2)
)

func welcomeView(s survey.Survey) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	if s.Description != "" {
		b.WriteString("\n")
		b.WriteString(s.Description)
		b.WriteString("\n")
	}
	if s.Incentive != "" {
		b.WriteString("\n")
		b.WriteString(incentiveStyle.Render("🎁 " + s.Incentive))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(render.HintStyle.Render(fmt.Sprintf("%s · %s", questionCount(len(s.Questions)), minutes(s.EstimatedDuration()))))
	b.WriteString("\n\n")
	b.WriteString(render.CursorStyle.Render("Press enter to start"))
	return b.String()
}

func questionCount(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func minutes(d time.Duration) string {
	m := int(d / time.Minute)
	if m == 1 {
		return "about 1 minute"
	}
	return fmt.Sprintf("about %d minutes", m)
}

func completeView(s survey.Survey, res model.SubmitResult, hasResult bool, shareURL string, shared bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Thank you!"))
	b.WriteString("\n")
	switch {
	case hasResult && res.Message != "":
		b.WriteString(res.Message)
	case len(s.Questions) == 0:
		b.WriteString("There is nothing to answer in " + s.Title + ".")
	default:
		b.WriteString("Your response to " + s.Title + " has been recorded.")
	}
	b.WriteString("\n")
	if hasResult && res.RewardCode != "" {
		b.WriteString("\n")
		b.WriteString(incentiveStyle.Render("Reward code: " + res.RewardCode))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if shared {
		b.WriteString("Share this survey: " + render.SelectedStyle.Render(shareURL))
	} else {
		b.WriteString(render.HintStyle.Render("s share · q close"))
	}
	return b.String()
}

func loadErrorView(err error) string {
	return errorStyle.Render("Could not load the survey") + "\n\n" +
		err.Error() + "\n\n" +
		render.HintStyle.Render("Press any key to exit")
}

func banner(text string) string {
	return bannerStyle.Render(text)
}
