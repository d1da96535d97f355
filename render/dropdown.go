package render

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/survey"
)

type dropdownField struct {
	q      survey.Question
	open   bool
	cursor int
	value  survey.Value
}

func newDropdown(q survey.Question, v survey.Value) Field {
	f := &dropdownField{q: q, value: v}
	f.cursor = max(0, indexOf(q.Options, textOf(v)))
	return f
}

func (f *dropdownField) Question() survey.Question { return f.q }
func (f *dropdownField) Value() survey.Value       { return f.value }
func (f *dropdownField) Focus() tea.Cmd            { return nil }

// Open reports whether the option list is expanded.
func (f *dropdownField) Open() bool { return f.open }

func (f *dropdownField) Update(msg tea.Msg) (Field, *Change, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(f.q.Options) == 0 {
		return f, nil, nil
	}
	if !f.open {
		if key.Matches(km, keys.Toggle) || key.Matches(km, keys.Right) {
			f.open = true
		}
		return f, nil, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		f.cursor = (f.cursor - 1 + len(f.q.Options)) % len(f.q.Options)
	case key.Matches(km, keys.Down):
		f.cursor = (f.cursor + 1) % len(f.q.Options)
	case key.Matches(km, keys.Close), key.Matches(km, keys.Left):
		f.open = false
	case key.Matches(km, keys.Toggle):
		option := f.q.Options[f.cursor]
		f.value = survey.Text(option)
		f.open = false
		return f, &Change{Value: f.value, Display: option}, nil
	}
	return f, nil, nil
}

func (f *dropdownField) View() string {
	var b strings.Builder
	b.WriteString(header(f.q))
	b.WriteString("\n\n")

	current := textOf(f.value)
	if current == "" {
		b.WriteString(HintStyle.Render("▾ Select an option"))
	} else {
		b.WriteString(SelectedStyle.Render("▾ " + current))
	}
	if !f.open {
		return b.String()
	}
	for i, o := range f.q.Options {
		b.WriteString("\n  ")
		if i == f.cursor {
			b.WriteString(CursorStyle.Render("› " + o))
		} else {
			b.WriteString(OptionStyle.Render("  " + o))
		}
	}
	return b.String()
}
