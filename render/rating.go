package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/survey"
)

type ratingField struct {
	q     survey.Question
	value survey.Value
	// hover is a preview only; it is never reported as a change
	hover    int
	hovering bool
}

func newRating(q survey.Question, v survey.Value) Field {
	return &ratingField{q: q, value: v}
}

func (f *ratingField) Question() survey.Question { return f.q }
func (f *ratingField) Value() survey.Value       { return f.value }
func (f *ratingField) Focus() tea.Cmd            { return nil }

func (f *ratingField) committed() (int, bool) {
	s, ok := f.value.(survey.Score)
	return int(s), ok
}

// Shown is the number of stars drawn, always inside the rating bounds.
func (f *ratingField) Shown() int {
	if f.hovering {
		return f.q.Rules.ClampRating(f.hover)
	}
	if n, ok := f.committed(); ok {
		return f.q.Rules.ClampRating(n)
	}
	return f.q.Rules.MinRating - 1
}

func (f *ratingField) Update(msg tea.Msg) (Field, *Change, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, nil
	}
	if i, ok := digit(km); ok {
		n := i + 1
		if n < f.q.Rules.MinRating || n > f.q.Rules.MaxRating {
			return f, nil, nil
		}
		return f, f.commit(n), nil
	}
	switch {
	case key.Matches(km, keys.Left):
		f.preview(-1)
	case key.Matches(km, keys.Right):
		f.preview(+1)
	case key.Matches(km, keys.Toggle):
		if !f.hovering {
			return f, nil, nil
		}
		return f, f.commit(f.Shown()), nil
	}
	return f, nil, nil
}

func (f *ratingField) preview(delta int) {
	base := f.Shown()
	if !f.hovering {
		if _, ok := f.committed(); !ok && delta > 0 {
			base = f.q.Rules.MinRating - 1
		}
	}
	f.hover = f.q.Rules.ClampRating(base + delta)
	f.hovering = true
}

func (f *ratingField) commit(n int) *Change {
	n = f.q.Rules.ClampRating(n)
	f.value = survey.Score(n)
	f.hovering = false
	return &Change{Value: f.value, Display: fmt.Sprintf("%d/%d", n, f.q.Rules.MaxRating)}
}

func (f *ratingField) View() string {
	shown := f.Shown()
	var stars strings.Builder
	for i := f.q.Rules.MinRating; i <= f.q.Rules.MaxRating; i++ {
		if i <= shown {
			stars.WriteString(StarStyle.Render("★"))
		} else {
			stars.WriteString(HintStyle.Render("☆"))
		}
		stars.WriteString(" ")
	}

	status := "not rated"
	if n, ok := f.committed(); ok {
		status = fmt.Sprintf("%d/%d", n, f.q.Rules.MaxRating)
	}
	if f.hovering {
		status += fmt.Sprintf(" · space to choose %d", shown)
	}
	return header(f.q) + "\n\n" + stars.String() + "\n" + HintStyle.Render(status)
}
