// Package cache keeps served surveys close to the HTTP layer. The database
// stays the source of truth; a cache miss or failure only costs a query.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Surveys interface {
	Get(ctx context.Context, id string) (model.Survey, bool, error)
	Put(ctx context.Context, s model.Survey) error
	Invalidate(ctx context.Context, ids ...string) error
	Close() error
}

func key(id string) string {
	return "chowmate:survey:" + id
}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the server named by a redis:// URL.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "cache.redis.url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "cache.redis.ping")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, id string) (model.Survey, bool, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Survey{}, false, nil
	}
	if err != nil {
		return model.Survey{}, false, errors.Wrap(err, "cache.redis.get")
	}
	s := model.Survey{}
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Survey{}, false, errors.Wrap(err, "cache.redis.decode")
	}
	return s, true, nil
}

func (r *Redis) Put(ctx context.Context, s model.Survey) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "cache.redis.encode")
	}
	return errors.Wrap(r.client.Set(ctx, key(s.ID), data, r.ttl).Err(), "cache.redis.set")
}

func (r *Redis) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	return errors.Wrap(r.client.Del(ctx, keys...).Err(), "cache.redis.del")
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Memory is an in-process cache, used when no Redis URL is configured.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	survey  model.Survey
	expires time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, entries: map[string]memoryEntry{}}
}

func (m *Memory) Get(_ context.Context, id string) (model.Survey, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return model.Survey{}, false, nil
	}
	if m.ttl > 0 && m.now().After(e.expires) {
		delete(m.entries, id)
		return model.Survey{}, false, nil
	}
	return e.survey, true, nil
}

func (m *Memory) Put(_ context.Context, s model.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{survey: s, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.entries, id)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (model.Survey, bool, error) { return model.Survey{}, false, nil }
func (Noop) Put(context.Context, model.Survey) error                 { return nil }
func (Noop) Invalidate(context.Context, ...string) error             { return nil }
func (Noop) Close() error                                            { return nil }
