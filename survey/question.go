package survey

import (
	"math"
	"time"
)

// QuestionType is the closed set of question kinds the wizard understands.
type QuestionType int

const (
	ShortText QuestionType = iota
	LongText
	SingleChoice
	MultiChoice
	Rating
	YesNo
	Dropdown
)

var questionTypeNames = [...]string{
	ShortText:    "short_text",
	LongText:     "long_text",
	SingleChoice: "single_choice",
	MultiChoice:  "multi_choice",
	Rating:       "rating",
	YesNo:        "yes_no",
	Dropdown:     "dropdown",
}

// QuestionTypes lists every question type in declaration order.
func QuestionTypes() []QuestionType {
	return []QuestionType{ShortText, LongText, SingleChoice, MultiChoice, Rating, YesNo, Dropdown}
}

func (t QuestionType) String() string {
	if t < 0 || int(t) >= len(questionTypeNames) {
		return "unknown"
	}
	return questionTypeNames[t]
}

// AutoAdvances reports whether answering a question of this type schedules
// an automatic move to the next question.
func (t QuestionType) AutoAdvances() bool {
	return t == SingleChoice || t == YesNo
}

const (
	DefaultMinRating = 1
	DefaultMaxRating = 5
)

// Rules are the validation bounds of a canonical question. A zero length
// bound means no bound.
type Rules struct {
	MinRating int
	MaxRating int
	MinLength int
	MaxLength int
}

// ClampRating bounds r to [MinRating, MaxRating].
func (r Rules) ClampRating(v int) int {
	if v < r.MinRating {
		return r.MinRating
	}
	if v > r.MaxRating {
		return r.MaxRating
	}
	return v
}

// Question is the canonical question record produced by Adapter.
type Question struct {
	ID          string
	Text        string
	Type        QuestionType
	Required    bool
	Description string
	Options     []string
	Rules       Rules
	Order       int
}

// Survey is immutable for the lifetime of a wizard session. Questions are
// sorted by Order, ties keeping their original position.
type Survey struct {
	ID          string
	Version     int
	Title       string
	Description string
	Incentive   string
	Questions   []Question
}

func (s Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

const perQuestion = 30 * time.Second

// EstimatedDuration is shown on the welcome screen, rounded up to whole
// minutes and never less than one.
func (s Survey) EstimatedDuration() time.Duration {
	d := time.Duration(len(s.Questions)) * perQuestion
	minutes := math.Ceil(d.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}
