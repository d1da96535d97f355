package render

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func question(typ survey.QuestionType, options ...string) survey.Question {
	return survey.Question{
		ID:       "q",
		Text:     "What did you think?",
		Type:     typ,
		Required: true,
		Options:  options,
		Rules:    survey.Rules{MinRating: 1, MaxRating: 5},
	}
}

func press(t *testing.T, f Field, keys ...string) (Field, []*Change) {
	t.Helper()
	var changes []*Change
	for _, k := range keys {
		var ch *Change
		f, ch, _ = f.Update(keyPress(k))
		if ch != nil {
			changes = append(changes, ch)
		}
	}
	return f, changes
}

func TestEveryQuestionTypeHasAStrategy(t *testing.T) {
	for _, typ := range survey.QuestionTypes() {
		f, err := New(question(typ, "a", "b"), nil)
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ, f.Question().Type)
		assert.Contains(t, f.View(), "What did you think?")
	}
}

func TestNewUnknownTypeFails(t *testing.T) {
	_, err := New(survey.Question{Type: survey.QuestionType(99)}, nil)
	assert.Error(t, err)
}

func TestHeaderShowsRequiredMarkerAndDescription(t *testing.T) {
	q := question(survey.ShortText)
	q.Description = "Be honest"
	f, err := New(q, nil)
	require.NoError(t, err)
	out := f.View()
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "Be honest")
}

func TestEmittedValuesMatchQuestionShape(t *testing.T) {
	scripts := map[survey.QuestionType][]string{
		survey.ShortText:    {"h", "i"},
		survey.LongText:     {"h", "i"},
		survey.SingleChoice: {"down", "space"},
		survey.MultiChoice:  {"space", "down", "space"},
		survey.Rating:       {"right", "right", "space", "4"},
		survey.YesNo:        {"right", "space", "y"},
		survey.Dropdown:     {"space", "down", "space"},
	}
	for _, typ := range survey.QuestionTypes() {
		f, err := New(question(typ, "a", "b"), nil)
		require.NoError(t, err)
		f.Focus()
		_, changes := press(t, f, scripts[typ]...)
		require.NotEmpty(t, changes, typ.String())
		for _, ch := range changes {
			assert.Equal(t, survey.ShapeOf(typ), ch.Value.Shape(), typ.String())
		}
	}
}

func TestShortTextEmitsEveryKeystroke(t *testing.T) {
	f, _ := New(question(survey.ShortText), nil)
	f.Focus()
	f, changes := press(t, f, "G", "r", "e", "a", "t")
	require.Len(t, changes, 5)
	last := changes[4]
	assert.Equal(t, survey.Text("Great"), last.Value)
	assert.Equal(t, "Great", last.Display)
	assert.Equal(t, survey.Text("Great"), f.Value())

	_, changes = press(t, f, "backspace")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Text("Grea"), changes[0].Value)
}

func TestShortTextRespectsMaxLength(t *testing.T) {
	q := question(survey.ShortText)
	q.Rules.MaxLength = 3
	f, _ := New(q, nil)
	f.Focus()
	f, _ = press(t, f, "a", "b", "c", "d")
	assert.Equal(t, survey.Text("abc"), f.Value())
	assert.Contains(t, f.View(), "3/3")
}

func TestTextHint(t *testing.T) {
	q := question(survey.LongText)
	q.Rules.MinLength = 10
	q.Rules.MaxLength = 200
	assert.Equal(t, "at least 10 characters · 4/200", Hint(q, "okay"))
	assert.Equal(t, "12/200", Hint(q, "long enough!"))
	assert.Equal(t, "", Hint(question(survey.Rating), "x"))
}

func TestLongTextKeepsInitialValue(t *testing.T) {
	f, _ := New(question(survey.LongText), survey.Text("line one"))
	assert.Equal(t, survey.Text("line one"), f.Value())
	assert.Contains(t, f.View(), "line one")
}

func TestSingleChoiceCommitsOption(t *testing.T) {
	f, _ := New(question(survey.SingleChoice, "Yes", "Maybe", "No"), nil)
	f, changes := press(t, f, "down", "down")
	assert.Empty(t, changes, "moving the cursor does not answer")

	f, changes = press(t, f, "space")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Text("No"), changes[0].Value)

	_, changes = press(t, f, "1")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Text("Yes"), changes[0].Value)
}

func TestSingleChoiceIgnoresOutOfRangeDigit(t *testing.T) {
	f, _ := New(question(survey.SingleChoice, "a", "b"), nil)
	_, changes := press(t, f, "7")
	assert.Empty(t, changes)
}

func TestMultiChoiceTogglesAndEmitsFullSet(t *testing.T) {
	f, _ := New(question(survey.MultiChoice, "jollof", "suya", "egusi"), nil)
	f, changes := press(t, f, "3", "1", "2")
	require.Len(t, changes, 3)
	assert.Equal(t, survey.Selection{"egusi", "jollof", "suya"}, changes[2].Value)
	assert.Equal(t, "egusi, jollof, suya", changes[2].Display)

	_, changes = press(t, f, "1")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Selection{"egusi", "suya"}, changes[0].Value)
}

func TestMultiChoiceRestoresSelection(t *testing.T) {
	f, _ := New(question(survey.MultiChoice, "a", "b"), survey.Selection{"b"})
	assert.Contains(t, f.View(), "[x] 2. b")
	assert.Contains(t, f.View(), "[ ] 1. a")
}

func TestRatingHoverIsNotCommitted(t *testing.T) {
	f, _ := New(question(survey.Rating), nil)
	f, changes := press(t, f, "right", "right", "right")
	assert.Empty(t, changes)
	assert.Nil(t, f.Value())
	assert.Equal(t, 3, f.(*ratingField).Shown())

	f, changes = press(t, f, "space")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Score(3), changes[0].Value)
	assert.Equal(t, "3/5", changes[0].Display)

	// hovering again leaves the committed value alone
	f, changes = press(t, f, "left")
	assert.Empty(t, changes)
	assert.Equal(t, survey.Score(3), f.Value())
	assert.Equal(t, 2, f.(*ratingField).Shown())
}

func TestRatingHoverStaysInBounds(t *testing.T) {
	q := question(survey.Rating)
	q.Rules = survey.Rules{MinRating: 2, MaxRating: 4}
	f, _ := New(q, nil)

	f, _ = press(t, f, "left", "left", "left")
	assert.Equal(t, 2, f.(*ratingField).Shown())
	f, _ = press(t, f, "right", "right", "right", "right")
	assert.Equal(t, 4, f.(*ratingField).Shown())

	_, changes := press(t, f, "5", "1")
	assert.Empty(t, changes, "digits outside the bounds are ignored")
}

func TestRatingClampsStoredValue(t *testing.T) {
	f, _ := New(question(survey.Rating), survey.Score(9))
	assert.Equal(t, 5, f.(*ratingField).Shown())
	assert.Equal(t, 5, strings.Count(f.View(), "★"))
}

func TestYesNo(t *testing.T) {
	f, _ := New(question(survey.YesNo), nil)
	_, changes := press(t, f, "n")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.No, changes[0].Value)

	f, _ = New(question(survey.YesNo), survey.No)
	_, changes = press(t, f, "left", "space")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Yes, changes[0].Value)
}

func TestDropdownOpensThenSelects(t *testing.T) {
	f, _ := New(question(survey.Dropdown, "Lagos", "Abuja", "Kano"), nil)
	assert.Contains(t, f.View(), "Select an option")
	assert.NotContains(t, f.View(), "Kano")

	f, changes := press(t, f, "space")
	assert.Empty(t, changes)
	assert.True(t, f.(*dropdownField).Open())
	assert.Contains(t, f.View(), "Kano")

	f, changes = press(t, f, "down", "space")
	require.Len(t, changes, 1)
	assert.Equal(t, survey.Text("Abuja"), changes[0].Value)
	assert.False(t, f.(*dropdownField).Open())

	f, _ = press(t, f, "space", "esc")
	assert.False(t, f.(*dropdownField).Open())
	assert.Equal(t, survey.Text("Abuja"), f.Value())
}

func TestWrongShapeValueIsDropped(t *testing.T) {
	f, err := New(question(survey.Rating), survey.Text("five"))
	require.NoError(t, err)
	assert.Nil(t, f.Value())
}
