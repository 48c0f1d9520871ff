package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/repository/cache"
)

const (
	KeyStory     = "story:%s"
	KeyFrontPage = "story:front:%s"
)

type storyCache struct {
	client *redis.Client
}

var _ domain.StoryCache = (*storyCache)(nil)

func NewStoryCache(client *redis.Client) *storyCache {
	return &storyCache{
		client,
	}
}

func getWithLogicalExpire[T any](ctx context.Context, client *redis.Client, key string) (res T, expired bool, err error) {
	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return res, false, domain.ErrCacheMiss
	} else if err != nil {
		return res, false, err
	}

	var wrapped cache.DataWithLogicalExpire[T]
	if err = json.Unmarshal(data, &wrapped); err != nil {
		return res, false, err
	}
	return wrapped.Data, wrapped.IsLogicalExpired(), nil
}

func setWithLogicalExpire[T any](ctx context.Context, client *redis.Client, key string, v T, ttl time.Duration) error {
	data, err := json.Marshal(cache.NewDataWithLogicalExpire(v, ttl))
	if err != nil {
		return err
	}
	return client.Set(ctx, key, data, cache.PhysicalTTL(ttl)).Err()
}

func (c *storyCache) GetStory(ctx context.Context, shortURL string) (domain.Story, bool, error) {
	return getWithLogicalExpire[domain.Story](ctx, c.client, fmt.Sprintf(KeyStory, shortURL))
}

// SetStory drops per-viewer state before caching.
func (c *storyCache) SetStory(ctx context.Context, s *domain.Story, ttl time.Duration) error {
	st := *s
	st.UserVoted = domain.None[bool]()
	return setWithLogicalExpire(ctx, c.client, fmt.Sprintf(KeyStory, s.ShortURL), st, ttl)
}

func (c *storyCache) DeleteStory(ctx context.Context, shortURL string) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyStory, shortURL)).Err()
}

func (c *storyCache) GetFrontPage(ctx context.Context, key string) ([]domain.Story, bool, error) {
	return getWithLogicalExpire[[]domain.Story](ctx, c.client, fmt.Sprintf(KeyFrontPage, key))
}

func (c *storyCache) SetFrontPage(ctx context.Context, key string, stories []domain.Story, ttl time.Duration) error {
	return setWithLogicalExpire(ctx, c.client, fmt.Sprintf(KeyFrontPage, key), stories, ttl)
}
