package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/joules19/chowmate-web-sub002/render"
	"github.com/joules19/chowmate-web-sub002/survey"
)

var (
	dotDoneStyle    = lipgloss.NewStyle().Foreground(render.ColorSuccess)
	dotCurrentStyle = lipgloss.NewStyle().Foreground(render.ColorPrimary).Bold(true)
	dotPendingStyle = lipgloss.NewStyle().Foreground(render.ColorMuted)
)

func newBar() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(render.ColorPrimary)),
		progress.WithWidth(40),
	)
}

// progressView draws "Question i of N", the bar and one dot per question.
func progressView(bar progress.Model, p survey.Progress) string {
	label := fmt.Sprintf("Question %d of %d", p.Current, p.Total)
	return render.HintStyle.Render(label) + "\n" +
		bar.ViewAs(float64(p.Percent)/100) + "\n" +
		dots(p.Dots)
}

func dots(ds []survey.Dot) string {
	out := make([]string, len(ds))
	for i, d := range ds {
		switch d {
		case survey.DotCurrent:
			out[i] = dotCurrentStyle.Render("◉")
		case survey.DotDone:
			out[i] = dotDoneStyle.Render("●")
		default:
			out[i] = dotPendingStyle.Render("○")
		}
	}
	return strings.Join(out, " ")
}
