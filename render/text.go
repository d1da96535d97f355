package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/survey"
)

type shortTextField struct {
	q     survey.Question
	input textinput.Model
	value survey.Value
}

func newShortText(q survey.Question, v survey.Value) Field {
	in := textinput.New()
	in.Placeholder = "Type your answer"
	in.Prompt = "› "
	in.CharLimit = q.Rules.MaxLength
	in.Width = 60
	in.SetValue(textOf(v))
	return &shortTextField{q: q, input: in, value: v}
}

func (f *shortTextField) Question() survey.Question { return f.q }
func (f *shortTextField) Value() survey.Value       { return f.value }
func (f *shortTextField) Focus() tea.Cmd            { return f.input.Focus() }

func (f *shortTextField) Update(msg tea.Msg) (Field, *Change, tea.Cmd) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	after := f.input.Value()
	if after == before {
		return f, nil, cmd
	}
	f.value = survey.Text(after)
	return f, &Change{Value: f.value, Display: after}, cmd
}

func (f *shortTextField) View() string {
	return header(f.q) + "\n\n" + f.input.View() + hintLine(f.q, f.input.Value())
}

type longTextField struct {
	q     survey.Question
	area  textarea.Model
	value survey.Value
}

func newLongText(q survey.Question, v survey.Value) Field {
	area := textarea.New()
	area.Placeholder = "Type your answer"
	area.ShowLineNumbers = false
	area.CharLimit = q.Rules.MaxLength
	area.SetWidth(60)
	area.SetHeight(5)
	// enter belongs to the wizard
	area.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "new line"))
	area.SetValue(textOf(v))
	return &longTextField{q: q, area: area, value: v}
}

func (f *longTextField) Question() survey.Question { return f.q }
func (f *longTextField) Value() survey.Value       { return f.value }
func (f *longTextField) Focus() tea.Cmd            { return f.area.Focus() }

func (f *longTextField) Update(msg tea.Msg) (Field, *Change, tea.Cmd) {
	before := f.area.Value()
	var cmd tea.Cmd
	f.area, cmd = f.area.Update(msg)
	after := f.area.Value()
	if after == before {
		return f, nil, cmd
	}
	f.value = survey.Text(after)
	return f, &Change{Value: f.value, Display: after}, cmd
}

func (f *longTextField) View() string {
	return header(f.q) + "\n\n" + f.area.View() + hintLine(f.q, f.area.Value())
}

// Hint describes the length bounds of a text question relative to text.
// Bounds are guidance only; the wizard gate does not check them.
func Hint(q survey.Question, text string) string {
	if q.Type != survey.ShortText && q.Type != survey.LongText {
		return ""
	}
	n := len([]rune(text))
	var parts []string
	if q.Rules.MinLength > 0 && n < q.Rules.MinLength {
		parts = append(parts, fmt.Sprintf("at least %d characters", q.Rules.MinLength))
	}
	if q.Rules.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", n, q.Rules.MaxLength))
	}
	return strings.Join(parts, " · ")
}

func hintLine(q survey.Question, text string) string {
	h := Hint(q, text)
	if h == "" {
		return ""
	}
	return "\n" + HintStyle.Render(h)
}
