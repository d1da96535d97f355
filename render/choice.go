package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/survey"
)

// choiceField serves SingleChoice (exclusive) and MultiChoice (checklist).
type choiceField struct {
	q      survey.Question
	multi  bool
	cursor int
	value  survey.Value
}

func newSingleChoice(q survey.Question, v survey.Value) Field {
	f := &choiceField{q: q, value: v}
	f.cursor = max(0, indexOf(q.Options, textOf(v)))
	return f
}

func newMultiChoice(q survey.Question, v survey.Value) Field {
	return &choiceField{q: q, multi: true, value: v}
}

func (f *choiceField) Question() survey.Question { return f.q }
func (f *choiceField) Value() survey.Value       { return f.value }
func (f *choiceField) Focus() tea.Cmd            { return nil }

func (f *choiceField) Update(msg tea.Msg) (Field, *Change, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(f.q.Options) == 0 {
		return f, nil, nil
	}
	if i, ok := digit(km); ok {
		if i >= len(f.q.Options) {
			return f, nil, nil
		}
		f.cursor = i
		return f, f.commit(), nil
	}
	switch {
	case key.Matches(km, keys.Up):
		f.cursor = (f.cursor - 1 + len(f.q.Options)) % len(f.q.Options)
	case key.Matches(km, keys.Down):
		f.cursor = (f.cursor + 1) % len(f.q.Options)
	case key.Matches(km, keys.Toggle):
		return f, f.commit(), nil
	}
	return f, nil, nil
}

func (f *choiceField) commit() *Change {
	option := f.q.Options[f.cursor]
	if !f.multi {
		f.value = survey.Text(option)
		return &Change{Value: f.value, Display: option}
	}
	sel, _ := f.value.(survey.Selection)
	next := sel.Toggle(option)
	f.value = next
	return &Change{Value: next, Display: next.Display()}
}

func (f *choiceField) selected(option string) bool {
	switch v := f.value.(type) {
	case survey.Text:
		return string(v) == option
	case survey.Selection:
		return v.Contains(option)
	}
	return false
}

func (f *choiceField) View() string {
	var b strings.Builder
	b.WriteString(header(f.q))
	b.WriteString("\n")
	for i, o := range f.q.Options {
		b.WriteString("\n")
		b.WriteString(optionLine(i, o, i == f.cursor, f.selected(o), f.multi))
	}
	return b.String()
}

func optionLine(i int, option string, cursor, selected, multi bool) string {
	mark := "( )"
	if multi {
		mark = "[ ]"
	}
	if selected {
		mark = "(•)"
		if multi {
			mark = "[x]"
		}
	}
	pointer := "  "
	if cursor {
		pointer = CursorStyle.Render("› ")
	}
	line := fmt.Sprintf("%s %d. %s", mark, i+1, option)
	switch {
	case selected:
		line = SelectedStyle.Render(line)
	default:
		line = OptionStyle.Render(line)
	}
	return pointer + line
}

func indexOf(options []string, option string) int {
	for i, o := range options {
		if o == option {
			return i
		}
	}
	return -1
}
