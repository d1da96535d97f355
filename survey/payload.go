package survey

import (
	"github.com/hashicorp/go-multierror"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

// BuildRequest serializes the answers in question order. Unanswered and
// empty values are left out, so every serialized answer has exactly one
// payload field set.
func BuildRequest(s Survey, sessionID string, answers Answers) model.SubmitRequest {
	req := model.SubmitRequest{
		SurveyID:  s.ID,
		SessionID: sessionID,
		Answers:   make([]model.Answer, 0, len(answers)),
	}
	for _, q := range s.Questions {
		if !answers.Answered(q.ID) {
			continue
		}
		req.Answers = append(req.Answers, EncodeAnswer(q.ID, answers[q.ID]))
	}
	return req
}

func EncodeAnswer(questionID string, v Value) model.Answer {
	a := model.Answer{QuestionID: questionID}
	switch v := v.(type) {
	case Text:
		text := string(v)
		a.Text = &text
	case Selection:
		a.SelectedOptions = append([]string{}, v...)
	case Score:
		n := int(v)
		a.NumericValue = &n
	}
	return a
}

// DecodeAnswer is the inverse of EncodeAnswer.
func DecodeAnswer(a model.Answer) (Value, error) {
	if a.Populated() != 1 {
		return nil, errors.Errorf("answer %q: exactly one of text, selectedOptions, numericValue must be set", a.QuestionID)
	}
	switch {
	case a.Text != nil:
		return Text(*a.Text), nil
	case a.SelectedOptions != nil:
		return Selection(append([]string{}, a.SelectedOptions...)), nil
	default:
		return Score(*a.NumericValue), nil
	}
}

// Verify checks a submitted request against the survey it answers. All
// problems are reported together.
func Verify(s Survey, req model.SubmitRequest) error {
	var result *multierror.Error
	if req.SurveyID != s.ID {
		result = multierror.Append(result, errors.Errorf("survey id %q does not match %q", req.SurveyID, s.ID))
	}

	answers := Answers{}
	for _, a := range req.Answers {
		q, ok := s.Question(a.QuestionID)
		if !ok {
			result = multierror.Append(result, errors.Errorf("answer %q: unknown question", a.QuestionID))
			continue
		}
		if _, dup := answers[q.ID]; dup {
			result = multierror.Append(result, errors.Errorf("answer %q: answered twice", q.ID))
			continue
		}
		v, err := DecodeAnswer(a)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if err := checkValue(q, v); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "answer %q", q.ID))
			continue
		}
		answers[q.ID] = v
	}

	for _, q := range s.Questions {
		if q.Required && !answers.Answered(q.ID) {
			result = multierror.Append(result, errors.Errorf("question %q is required", q.ID))
		}
	}
	return result.ErrorOrNil()
}

func checkValue(q Question, v Value) error {
	if v.Shape() != ShapeOf(q.Type) {
		return errors.Wrapf(ErrValueShape, "%s", q.Type)
	}
	switch v := v.(type) {
	case Score:
		if int(v) != q.Rules.ClampRating(int(v)) {
			return errors.Errorf("rating %d outside %d..%d", v, q.Rules.MinRating, q.Rules.MaxRating)
		}
	case Selection:
		for _, o := range v {
			if !offered(q, o) {
				return errors.Errorf("option %q is not offered", o)
			}
		}
	case Text:
		switch q.Type {
		case SingleChoice, Dropdown:
			if v != "" && !offered(q, string(v)) {
				return errors.Errorf("option %q is not offered", v)
			}
		case YesNo:
			if v != "" && v != Yes && v != No {
				return errors.Errorf("%q is neither %q nor %q", v, Yes, No)
			}
		}
	}
	return nil
}

func offered(q Question, option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Values stored for YesNo questions.
const (
	Yes Text = "Yes"
	No  Text = "No"
)
