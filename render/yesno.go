package render

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joules19/chowmate-web-sub002/survey"
)

var yesNo = [2]survey.Text{survey.Yes, survey.No}

type yesNoField struct {
	q      survey.Question
	cursor int
	value  survey.Value
}

func newYesNo(q survey.Question, v survey.Value) Field {
	f := &yesNoField{q: q, value: v}
	if v == survey.No {
		f.cursor = 1
	}
	return f
}

func (f *yesNoField) Question() survey.Question { return f.q }
func (f *yesNoField) Value() survey.Value       { return f.value }
func (f *yesNoField) Focus() tea.Cmd            { return nil }

func (f *yesNoField) Update(msg tea.Msg) (Field, *Change, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, nil
	}
	switch {
	case key.Matches(km, keys.Yes):
		return f, f.commit(0), nil
	case key.Matches(km, keys.No):
		return f, f.commit(1), nil
	case key.Matches(km, keys.Left), key.Matches(km, keys.Up):
		f.cursor = 0
	case key.Matches(km, keys.Right), key.Matches(km, keys.Down):
		f.cursor = 1
	case key.Matches(km, keys.Toggle):
		return f, f.commit(f.cursor), nil
	}
	return f, nil, nil
}

func (f *yesNoField) commit(i int) *Change {
	f.cursor = i
	f.value = yesNo[i]
	return &Change{Value: f.value, Display: string(yesNo[i])}
}

var (
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)
	buttonCursorStyle = buttonStyle.
				BorderForeground(ColorPrimary)
)

func (f *yesNoField) View() string {
	buttons := make([]string, 0, len(yesNo))
	for i, label := range yesNo {
		style := buttonStyle
		if i == f.cursor {
			style = buttonCursorStyle
		}
		text := string(label)
		if f.value == label {
			text = SelectedStyle.Render("✓ " + text)
		}
		buttons = append(buttons, style.Render(text))
	}
	return header(f.q) + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
