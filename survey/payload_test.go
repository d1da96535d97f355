package survey

import (
	"testing"

	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func mixedSurvey() Survey {
	r := Rules{MinRating: 1, MaxRating: 5}
	return Survey{ID: "mixed", Questions: []Question{
		{ID: "name", Type: ShortText, Rules: r},
		{ID: "dishes", Type: MultiChoice, Options: []string{"jollof", "suya", "egusi"}, Rules: r},
		{ID: "stars", Type: Rating, Required: true, Rules: r},
		{ID: "again", Type: YesNo, Rules: r},
		{ID: "city", Type: Dropdown, Options: []string{"Lagos", "Abuja"}, Rules: r},
	}}
}

func TestBuildRequestOmitsUnansweredAndEmpty(t *testing.T) {
	s := mixedSurvey()
	req := BuildRequest(s, "sess", Answers{
		"city":   Text("Abuja"),
		"dishes": Selection{"suya", "jollof"},
		"name":   Text(""),
		"stars":  Score(2),
	})

	require.Len(t, req.Answers, 3)
	assert.Equal(t, "dishes", req.Answers[0].QuestionID)
	assert.Equal(t, []string{"suya", "jollof"}, req.Answers[0].SelectedOptions, "selection order kept")
	assert.Equal(t, "stars", req.Answers[1].QuestionID)
	assert.Equal(t, 2, *req.Answers[1].NumericValue)
	assert.Equal(t, "city", req.Answers[2].QuestionID)
	assert.Equal(t, "Abuja", *req.Answers[2].Text)

	for _, a := range req.Answers {
		assert.Equal(t, 1, a.Populated(), a.QuestionID)
	}
}

func TestVerifyAcceptsBuiltRequest(t *testing.T) {
	s := mixedSurvey()
	req := BuildRequest(s, "sess", Answers{
		"dishes": Selection{"egusi"},
		"stars":  Score(5),
		"again":  No,
	})
	assert.NoError(t, Verify(s, req))
}

func TestVerifyReportsEveryProblem(t *testing.T) {
	s := mixedSurvey()
	req := model.SubmitRequest{
		SurveyID:  "mixed",
		SessionID: "sess",
		Answers: []model.Answer{
			{QuestionID: "ghost", Text: strp("boo")},
			{QuestionID: "name", Text: strp("Ada"), NumericValue: new(int)},
			{QuestionID: "dishes", Text: strp("suya")},
			{QuestionID: "city", Text: strp("Kano")},
			{QuestionID: "again", Text: strp("Perhaps")},
		},
	}
	err := Verify(s, req)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, `"ghost": unknown question`)
	assert.Contains(t, msg, `"name": exactly one`)
	assert.Contains(t, msg, `"dishes"`)
	assert.Contains(t, msg, `option "Kano" is not offered`)
	assert.Contains(t, msg, `"Perhaps"`)
	assert.Contains(t, msg, `question "stars" is required`)
}

func TestVerifyRatingBounds(t *testing.T) {
	s := mixedSurvey()
	for _, n := range []int{0, 6} {
		n := n
		req := model.SubmitRequest{SurveyID: "mixed", SessionID: "s", Answers: []model.Answer{
			{QuestionID: "stars", NumericValue: &n},
		}}
		assert.Error(t, Verify(s, req), n)
	}
}

func TestSelectionToggleReturnsFullSet(t *testing.T) {
	var sel Selection
	sel = sel.Toggle("a")
	sel = sel.Toggle("b")
	sel = sel.Toggle("c")
	assert.Equal(t, Selection{"a", "b", "c"}, sel)

	without := sel.Toggle("b")
	assert.Equal(t, Selection{"a", "c"}, without)
	assert.Equal(t, Selection{"a", "b", "c"}, sel, "toggle does not modify its receiver")
	assert.True(t, without.Toggle("a").Toggle("c").IsEmpty())
}
