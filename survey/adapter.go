package survey

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

var ErrUnknownType = errors.New("unknown question type")

// UnknownTypePolicy decides what the adapter does with a type code it does
// not recognise.
type UnknownTypePolicy int

const (
	// FallbackToShortText renders the question as short text and logs a
	// warning naming the question and the offending code.
	FallbackToShortText UnknownTypePolicy = iota
	// RejectUnknownType fails the adaptation with ErrUnknownType.
	RejectUnknownType
)

// numeric codes used by the data source
var typeByCode = map[int]QuestionType{
	0: ShortText,
	1: LongText,
	2: SingleChoice,
	3: MultiChoice,
	4: Rating,
	5: YesNo,
	6: Dropdown,
}

var typeBySymbol = map[string]QuestionType{}

func init() {
	for _, t := range QuestionTypes() {
		typeBySymbol[symbolKey(t.String())] = t
	}
}

// "single_choice", "SingleChoice" and "single-choice" all name the same type
func symbolKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// ResolveType maps a raw type code onto a QuestionType.
func ResolveType(code model.TypeCode) (QuestionType, bool) {
	if n, ok := code.Numeric(); ok {
		t, found := typeByCode[n]
		return t, found
	}
	t, found := typeBySymbol[symbolKey(code.Symbol())]
	return t, found
}

// Adapter is the single normalization boundary between raw questions and
// the rest of the wizard.
type Adapter struct {
	Policy UnknownTypePolicy
}

func (a Adapter) Question(raw model.Question) (Question, error) {
	t, ok := ResolveType(raw.Type)
	if !ok {
		if a.Policy == RejectUnknownType {
			return Question{}, errors.Wrapf(ErrUnknownType, "question %q: type %q", raw.ID, raw.Type.String())
		}
		log.WithFields(log.Fields{
			"question": raw.ID,
			"type":     raw.Type.String(),
		}).Warn("survey.adapter: unknown question type, falling back to short_text")
		t = ShortText
	}

	q := Question{
		ID:          raw.ID,
		Text:        raw.Text,
		Type:        t,
		Required:    raw.Required,
		Description: raw.Description,
		Options:     append([]string{}, raw.Options...),
		Order:       raw.Order,
		Rules:       adaptRules(raw.Validation),
	}
	return q, nil
}

func adaptRules(v *model.Validation) Rules {
	r := Rules{MinRating: DefaultMinRating, MaxRating: DefaultMaxRating}
	if v == nil {
		return r
	}
	if v.MinRating != nil {
		r.MinRating = *v.MinRating
	}
	if v.MaxRating != nil {
		r.MaxRating = *v.MaxRating
	}
	if r.MaxRating < r.MinRating {
		r.MinRating, r.MaxRating = DefaultMinRating, DefaultMaxRating
	}
	if v.MinLength != nil && *v.MinLength > 0 {
		r.MinLength = *v.MinLength
	}
	if v.MaxLength != nil && *v.MaxLength > 0 {
		r.MaxLength = *v.MaxLength
	}
	return r
}

// Survey adapts every question and sorts them by Order. Under
// RejectUnknownType every offending question is reported, not just the first.
func (a Adapter) Survey(raw model.Survey) (Survey, error) {
	s := Survey{
		ID:          raw.ID,
		Version:     raw.Version,
		Title:       raw.Title,
		Description: raw.Description,
		Incentive:   raw.Incentive,
		Questions:   make([]Question, 0, len(raw.Questions)),
	}

	var result *multierror.Error
	for _, rq := range raw.Questions {
		q, err := a.Question(rq)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		s.Questions = append(s.Questions, q)
	}
	if err := result.ErrorOrNil(); err != nil {
		return Survey{}, err
	}

	sort.SliceStable(s.Questions, func(i, j int) bool {
		return s.Questions[i].Order < s.Questions[j].Order
	})
	return s, nil
}

// Raw converts a canonical question back to its wire form. Adapting the
// result yields q again.
func (q Question) Raw() model.Question {
	r := q.Rules
	return model.Question{
		ID:          q.ID,
		Text:        q.Text,
		Type:        model.SymbolicType(q.Type.String()),
		Required:    q.Required,
		Description: q.Description,
		Options:     append([]string{}, q.Options...),
		Order:       q.Order,
		Validation: &model.Validation{
			MinRating: &r.MinRating,
			MaxRating: &r.MaxRating,
			MinLength: &r.MinLength,
			MaxLength: &r.MaxLength,
		},
	}
}
