// Package render draws one survey question at a time and turns key presses
// into answer values.
package render

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/survey"
	"github.com/pkg/errors"
)

// Change is emitted when an interaction commits a value. Display is the
// text shown for the value; for free text it is the value itself.
type Change struct {
	Value   survey.Value
	Display string
}

// Field is the input surface of one question. Fields never see the wizard
// state; they get a question and its current value and report changes.
type Field interface {
	Question() survey.Question
	// Value is the committed value, nil when unanswered.
	Value() survey.Value
	Update(msg tea.Msg) (Field, *Change, tea.Cmd)
	View() string
	Focus() tea.Cmd
}

type strategy func(q survey.Question, v survey.Value) Field

var strategies = map[survey.QuestionType]strategy{
	survey.ShortText:    newShortText,
	survey.LongText:     newLongText,
	survey.SingleChoice: newSingleChoice,
	survey.MultiChoice:  newMultiChoice,
	survey.Rating:       newRating,
	survey.YesNo:        newYesNo,
	survey.Dropdown:     newDropdown,
}

// New returns the field for q showing v. A value of the wrong shape is
// treated as no value.
func New(q survey.Question, v survey.Value) (Field, error) {
	s, ok := strategies[q.Type]
	if !ok {
		return nil, errors.Errorf("render: no input for question type %s", q.Type)
	}
	if v != nil && v.Shape() != survey.ShapeOf(q.Type) {
		v = nil
	}
	return s(q, v), nil
}

func header(q survey.Question) string {
	var b strings.Builder
	b.WriteString(QuestionStyle.Render(q.Text))
	if q.Required {
		b.WriteString(RequiredStyle.Render(" *"))
	}
	if q.Description != "" {
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render(q.Description))
	}
	return b.String()
}

func textOf(v survey.Value) string {
	if t, ok := v.(survey.Text); ok {
		return string(t)
	}
	return ""
}

// digit returns the 0-based index named by a "1".."9" key press.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || msg.Alt {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
