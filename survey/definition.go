package survey

import (
	"github.com/hashicorp/go-multierror"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

// CheckDefinition reports everything wrong with an authored survey before
// it is stored. Unknown question types are errors here whatever policy the
// respondent side uses.
func CheckDefinition(raw model.Survey) error {
	var result *multierror.Error
	if raw.ID == "" {
		result = multierror.Append(result, errors.New("survey id is empty"))
	}
	if raw.Title == "" {
		result = multierror.Append(result, errors.New("survey title is empty"))
	}

	strict := Adapter{Policy: RejectUnknownType}
	seen := map[string]bool{}
	for i, rq := range raw.Questions {
		if rq.ID == "" {
			result = multierror.Append(result, errors.Errorf("question #%d has no id", i+1))
			continue
		}
		if seen[rq.ID] {
			result = multierror.Append(result, errors.Errorf("question %q is defined twice", rq.ID))
			continue
		}
		seen[rq.ID] = true

		q, err := strict.Question(rq)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if q.Text == "" {
			result = multierror.Append(result, errors.Errorf("question %q has no text", q.ID))
		}
		switch q.Type {
		case SingleChoice, MultiChoice, Dropdown:
			if len(q.Options) == 0 {
				result = multierror.Append(result, errors.Errorf("question %q (%s) has no options", q.ID, q.Type))
			}
			options := map[string]bool{}
			for _, o := range q.Options {
				if options[o] {
					result = multierror.Append(result, errors.Errorf("question %q lists option %q twice", q.ID, o))
				}
				options[o] = true
			}
		}
		if v := rq.Validation; v != nil && v.MinRating != nil && v.MaxRating != nil && *v.MaxRating < *v.MinRating {
			result = multierror.Append(result, errors.Errorf("question %q: maxRating %d is below minRating %d", q.ID, *v.MaxRating, *v.MinRating))
		}
	}
	return result.ErrorOrNil()
}
