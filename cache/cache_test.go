package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() model.Survey {
	return model.Survey{
		ID:    "feedback",
		Title: "Delivery feedback",
		Questions: []model.Question{
			{ID: "q1", Text: "Order?", Type: model.NumericType(0), Required: true},
			{ID: "q2", Text: "Again?", Type: model.SymbolicType("yes_no")},
		},
	}
}

func exercise(t *testing.T, c Surveys) {
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "feedback")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, sample()))
	got, ok, err := c.Get(ctx, "feedback")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Delivery feedback", got.Title)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "yes_no", got.Questions[1].Type.Symbol())

	require.NoError(t, c.Invalidate(ctx, "feedback"))
	_, ok, err = c.Get(ctx, "feedback")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory(time.Minute))
}

func TestMemoryExpires(t *testing.T) {
	now := time.Now()
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }
	require.NoError(t, m.Put(context.Background(), sample()))

	now = now.Add(2 * time.Minute)
	_, ok, err := m.Get(context.Background(), "feedback")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Surveys = Noop{}
	require.NoError(t, c.Put(ctx, sample()))
	_, ok, err := c.Get(ctx, "feedback")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("CHOWMATE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CHOWMATE_TEST_REDIS_URL not set")
	}
	c, err := NewRedis(context.Background(), url, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	exercise(t, c)
}

func TestNewRedisBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}
