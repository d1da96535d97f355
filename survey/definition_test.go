package survey

import (
	"testing"

	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/stretchr/testify/assert"
)

func TestCheckDefinitionAcceptsValidSurvey(t *testing.T) {
	raw := model.Survey{
		ID:    "feedback",
		Title: "Delivery feedback",
		Questions: []model.Question{
			{ID: "q1", Text: "Order?", Type: model.NumericType(0)},
			{ID: "q2", Text: "Dish?", Type: model.SymbolicType("Single-Choice"), Options: []string{"jollof", "suya"}},
			{ID: "q3", Text: "Again?", Type: model.NumericType(5)},
		},
	}
	assert.NoError(t, CheckDefinition(raw))
}

func TestCheckDefinitionReportsEveryProblem(t *testing.T) {
	lo, hi := 5, 1
	raw := model.Survey{
		ID: "feedback",
		Questions: []model.Question{
			{ID: "q1", Text: "Order?", Type: model.NumericType(0)},
			{ID: "q1", Text: "Again?", Type: model.NumericType(0)},
			{ID: "", Text: "Nameless", Type: model.NumericType(0)},
			{ID: "q2", Text: "Dish?", Type: model.NumericType(3)},
			{ID: "q3", Text: "Where?", Type: model.NumericType(6), Options: []string{"Lagos", "Lagos"}},
			{ID: "q4", Text: "Matrix", Type: model.SymbolicType("matrix")},
			{ID: "q5", Text: "", Type: model.NumericType(4), Validation: &model.Validation{MinRating: &lo, MaxRating: &hi}},
		},
	}
	err := CheckDefinition(raw)
	if !assert.Error(t, err) {
		return
	}
	msg := err.Error()
	for _, want := range []string{
		"survey title is empty",
		`question "q1" is defined twice`,
		"question #3 has no id",
		`question "q2" (multi_choice) has no options`,
		`lists option "Lagos" twice`,
		"unknown question type",
		`question "q5" has no text`,
		"maxRating 1 is below minRating 5",
	} {
		assert.Contains(t, msg, want)
	}
	assert.ErrorIs(t, err, ErrUnknownType)
}
