package model

import "time"

// Survey is the survey document as stored and served. Questions keep the
// type code exactly as authored; survey.Adapter turns them into canonical
// questions.
type Survey struct {
	ID          string     `json:"id" yaml:"id"`
	Version     int        `json:"version,omitempty" yaml:"-"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Incentive   string     `json:"incentive,omitempty" yaml:"incentive"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

type Question struct {
	ID          string      `json:"id" yaml:"id"`
	Text        string      `json:"text" yaml:"text"`
	Type        TypeCode    `json:"type" yaml:"type"`
	Required    bool        `json:"required" yaml:"required"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Options     []string    `json:"options,omitempty" yaml:"options"`
	Validation  *Validation `json:"validation,omitempty" yaml:"validation"`
	Order       int         `json:"order" yaml:"order"`
}

// Validation bounds. A nil pointer means the bound was not given.
type Validation struct {
	MinRating *int `json:"minRating,omitempty" yaml:"minRating"`
	MaxRating *int `json:"maxRating,omitempty" yaml:"maxRating"`
	MinLength *int `json:"minLength,omitempty" yaml:"minLength"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength"`
}

type SubmitRequest struct {
	SurveyID  string   `json:"surveyId" validate:"required"`
	SessionID string   `json:"sessionId" validate:"required"`
	Answers   []Answer `json:"answers" validate:"dive"`
}

// Answer carries exactly one of Text, SelectedOptions or NumericValue.
type Answer struct {
	QuestionID      string   `json:"questionId" validate:"required"`
	Text            *string  `json:"text,omitempty"`
	SelectedOptions []string `json:"selectedOptions,omitempty"`
	NumericValue    *int     `json:"numericValue,omitempty"`
}

// Populated counts the payload fields set on the answer.
func (a Answer) Populated() (n int) {
	if a.Text != nil {
		n++
	}
	if a.SelectedOptions != nil {
		n++
	}
	if a.NumericValue != nil {
		n++
	}
	return
}

type SubmitResult struct {
	ResponseID string `json:"responseId"`
	RewardCode string `json:"rewardCode,omitempty"`
	Message    string `json:"message,omitempty"`
}

type Response struct {
	ID         string    `json:"id"`
	SurveyID   string    `json:"surveyId"`
	SessionID  string    `json:"sessionId"`
	Respondent string    `json:"respondent,omitempty"`
	Time       time.Time `json:"time"`
	IP         string    `json:"ip"`
	Answers    []Answer  `json:"answers"`
}
