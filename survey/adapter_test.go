package survey

import (
	"testing"

	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestAdapterResolvesNumericAndSymbolicCodes(t *testing.T) {
	tests := []struct {
		code model.TypeCode
		want QuestionType
	}{
		{model.NumericType(0), ShortText},
		{model.NumericType(1), LongText},
		{model.NumericType(2), SingleChoice},
		{model.NumericType(3), MultiChoice},
		{model.NumericType(4), Rating},
		{model.NumericType(5), YesNo},
		{model.NumericType(6), Dropdown},
		{model.SymbolicType("short_text"), ShortText},
		{model.SymbolicType("LongText"), LongText},
		{model.SymbolicType("single-choice"), SingleChoice},
		{model.SymbolicType("multi_choice"), MultiChoice},
		{model.SymbolicType("RATING"), Rating},
		{model.SymbolicType("yes_no"), YesNo},
		{model.SymbolicType("dropdown"), Dropdown},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			q, err := Adapter{Policy: RejectUnknownType}.Question(model.Question{ID: "q", Type: tt.code})
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Type)
		})
	}
}

func TestAdapterDefaults(t *testing.T) {
	q, err := Adapter{}.Question(model.Question{ID: "q1", Text: "How was it?", Type: model.SymbolicType("rating")})
	require.NoError(t, err)

	assert.Equal(t, DefaultMinRating, q.Rules.MinRating)
	assert.Equal(t, DefaultMaxRating, q.Rules.MaxRating)
	assert.NotNil(t, q.Options)
	assert.Empty(t, q.Options)
}

func TestAdapterKeepsGivenBounds(t *testing.T) {
	q, err := Adapter{}.Question(model.Question{
		ID:   "q1",
		Type: model.NumericType(4),
		Validation: &model.Validation{
			MinRating: intp(0),
			MaxRating: intp(10),
			MinLength: intp(3),
			MaxLength: intp(140),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Rules{MinRating: 0, MaxRating: 10, MinLength: 3, MaxLength: 140}, q.Rules)
}

func TestAdapterInvertedRatingBoundsUseDefaults(t *testing.T) {
	q, err := Adapter{}.Question(model.Question{
		ID:         "q1",
		Type:       model.NumericType(4),
		Validation: &model.Validation{MinRating: intp(7), MaxRating: intp(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultMinRating, q.Rules.MinRating)
	assert.Equal(t, DefaultMaxRating, q.Rules.MaxRating)
}

func TestAdapterIsIdempotent(t *testing.T) {
	raws := []model.Question{
		{ID: "a", Text: "Name", Type: model.NumericType(0), Required: true},
		{ID: "b", Text: "Pick", Type: model.SymbolicType("dropdown"), Options: []string{"x", "y"}, Order: 4},
		{ID: "c", Text: "Rate", Type: model.NumericType(4), Validation: &model.Validation{MaxRating: intp(10)}},
		{ID: "d", Text: "Tell us", Type: model.SymbolicType("long_text"), Validation: &model.Validation{MinLength: intp(10), MaxLength: intp(500)}},
	}
	for _, raw := range raws {
		once, err := Adapter{}.Question(raw)
		require.NoError(t, err)
		twice, err := Adapter{}.Question(once.Raw())
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestAdapterUnknownTypeFallsBackToShortText(t *testing.T) {
	for _, code := range []model.TypeCode{model.NumericType(42), model.SymbolicType("matrix"), {}} {
		q, err := Adapter{Policy: FallbackToShortText}.Question(model.Question{ID: "q", Type: code})
		require.NoError(t, err)
		assert.Equal(t, ShortText, q.Type)
	}
}

func TestAdapterUnknownTypeRejected(t *testing.T) {
	_, err := Adapter{Policy: RejectUnknownType}.Survey(model.Survey{
		ID: "s",
		Questions: []model.Question{
			{ID: "a", Type: model.NumericType(42)},
			{ID: "b", Type: model.NumericType(0)},
			{ID: "c", Type: model.SymbolicType("matrix")},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), `"c"`)
}

func TestAdapterSortsByOrderStably(t *testing.T) {
	s, err := Adapter{}.Survey(model.Survey{
		ID: "s",
		Questions: []model.Question{
			{ID: "third", Order: 30},
			{ID: "first-a", Order: 10},
			{ID: "second", Order: 20},
			{ID: "first-b", Order: 10},
			{ID: "zero", Order: -5},
		},
	})
	require.NoError(t, err)

	ids := []string{}
	for _, q := range s.Questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"zero", "first-a", "first-b", "second", "third"}, ids)
}

func TestEstimatedDuration(t *testing.T) {
	assert.Equal(t, "1m0s", Survey{}.EstimatedDuration().String())
	s := Survey{Questions: make([]Question, 5)}
	assert.Equal(t, "3m0s", s.EstimatedDuration().String())
}
