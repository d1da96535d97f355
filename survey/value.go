package survey

import (
	"strconv"
	"strings"
)

// Shape is the form an answer value takes.
type Shape int

const (
	TextShape Shape = iota
	SetShape
	NumberShape
)

// ShapeOf returns the only value shape a question of type t accepts.
func ShapeOf(t QuestionType) Shape {
	switch t {
	case MultiChoice:
		return SetShape
	case Rating:
		return NumberShape
	default:
		return TextShape
	}
}

// Value is an answer value. Its concrete type is one of Text, Selection or
// Score.
type Value interface {
	Shape() Shape
	IsEmpty() bool
	// Display is the human-readable form shown on summaries.
	Display() string
	clone() Value
}

// Text answers ShortText, LongText, SingleChoice, Dropdown and YesNo.
type Text string

func (Text) Shape() Shape      { return TextShape }
func (v Text) IsEmpty() bool   { return v == "" }
func (v Text) Display() string { return string(v) }
func (v Text) clone() Value    { return v }

// Selection answers MultiChoice. It behaves as a set but keeps the order in
// which options were selected.
type Selection []string

func (Selection) Shape() Shape      { return SetShape }
func (v Selection) IsEmpty() bool   { return len(v) == 0 }
func (v Selection) Display() string { return strings.Join(v, ", ") }
func (v Selection) clone() Value    { return append(Selection{}, v...) }

func (v Selection) Contains(option string) bool {
	for _, o := range v {
		if o == option {
			return true
		}
	}
	return false
}

// Toggle returns the full selection after toggling option: removed when it
// was selected, appended otherwise. v is not modified.
func (v Selection) Toggle(option string) Selection {
	out := make(Selection, 0, len(v)+1)
	found := false
	for _, o := range v {
		if o == option {
			found = true
			continue
		}
		out = append(out, o)
	}
	if !found {
		out = append(out, option)
	}
	return out
}

// Score answers Rating.
type Score int

func (Score) Shape() Shape      { return NumberShape }
func (Score) IsEmpty() bool     { return false }
func (v Score) Display() string { return strconv.Itoa(int(v)) }
func (v Score) clone() Value    { return v }

// Answers maps question ids to values. A missing key means unanswered.
type Answers map[string]Value

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v.clone()
	}
	return out
}

// Answered reports whether the question has a non-empty value.
func (a Answers) Answered(id string) bool {
	v, ok := a[id]
	return ok && v != nil && !v.IsEmpty()
}
