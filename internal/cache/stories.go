// Package cache holds the optional Redis read-through cache for the story list.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"fyno/internal/domain"
)

const (
	storiesKeyPrefix = "fyno:stories:v1:"
	generationKey    = "fyno:stories:gen"
)

// storiesKey names the list cached for one generation. Invalidate bumps the
// generation, so a list read before the bump lands under a key nobody reads.
func storiesKey(gen int64) string {
	return storiesKeyPrefix + strconv.FormatInt(gen, 10)
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// StoryCache stores the full story list under a single key.
type StoryCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStoryCache creates a story cache with the given expiry.
func NewStoryCache(client *redis.Client, ttl time.Duration) *StoryCache {
	return &StoryCache{redis: client, ttl: ttl}
}

// Get returns the cached list for the current generation. ok is false on a
// miss; gen is still valid then and should be passed to Set.
func (c *StoryCache) Get(ctx context.Context) (stories []domain.ClientStory, gen int64, ok bool, err error) {
	gen, err = c.redis.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("cache: get generation: %w", err)
	}

	data, err := c.redis.Get(ctx, storiesKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("cache: get stories: %w", err)
	}
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, gen, false, fmt.Errorf("cache: unmarshal stories: %w", err)
	}
	return stories, gen, true, nil
}

// Set caches the list under the generation Get reported.
func (c *StoryCache) Set(ctx context.Context, gen int64, stories []domain.ClientStory) error {
	data, err := json.Marshal(stories)
	if err != nil {
		return fmt.Errorf("cache: marshal stories: %w", err)
	}
	if err := c.redis.Set(ctx, storiesKey(gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set stories: %w", err)
	}
	return nil
}

// Invalidate starts a new generation so the next read goes to the store.
func (c *StoryCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("cache: invalidate stories: %w", err)
	}
	return nil
}
