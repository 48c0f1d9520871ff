package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/go-clean-forum/domain"
)

const (
	StoryCacheTTL     = 10 * time.Minute
	FrontPageCacheTTL = 30 * time.Second
)

// storyRepository 协调层，协调缓存和数据库
type storyRepository struct {
	db            domain.StoryRepository
	cache         domain.StoryCache
	rebuildGroup  singleflight.Group
	mu            sync.Mutex
	rebuildingMap map[string]bool // 正在重建的 short url
}

var _ domain.StoryRepository = (*storyRepository)(nil)

// NewStoryRepository 创建协调层repository
func NewStoryRepository(db domain.StoryRepository, cache domain.StoryCache) *storyRepository {
	return &storyRepository{
		db:            db,
		cache:         cache,
		rebuildingMap: make(map[string]bool),
	}
}

// frontPageKey is empty for every listing that is not the default first page.
func frontPageKey(q domain.StoryQuery, tagID int64) string {
	if q.Page > 1 || q.Cursor != "" || tagID != 0 || q.Num != DefaultPageNum {
		return ""
	}
	return q.Order
}

// Fetch 获取故事列表，首页走缓存
func (r *storyRepository) Fetch(ctx context.Context, q domain.StoryQuery, tagID int64) ([]domain.Story, error) {
	key := frontPageKey(q, tagID)
	if key != "" {
		stories, expired, err := r.cache.GetFrontPage(ctx, key)
		if err == nil {
			if expired {
				go r.rebuildFrontPage(context.Background(), q)
			}
			return stories, nil
		}
	}

	stories, err := r.db.Fetch(ctx, q, tagID)
	if err != nil {
		return nil, err
	}

	if key != "" {
		go func(data []domain.Story) {
			if err := r.cache.SetFrontPage(context.Background(), key, data, FrontPageCacheTTL); err != nil {
				logrus.Warnf("failed to cache front page %s: %v", key, err)
			}
		}(stories)
	}
	return stories, nil
}

// GetByShortURL 使用逻辑过期策略避免缓存击穿
func (r *storyRepository) GetByShortURL(ctx context.Context, shortURL string) (domain.Story, error) {
	st, expired, err := r.cache.GetStory(ctx, shortURL)
	if err == nil {
		if expired {
			go r.rebuildStoryCache(context.Background(), shortURL)
		}
		return st, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("story cache read failed for %s: %v", shortURL, err)
	}

	// 缓存未命中，使用singleflight避免缓存击穿
	// 共享的加载不受首个请求取消的影响
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := r.rebuildGroup.Do("story:"+shortURL, func() (any, error) {
		st, err := r.db.GetByShortURL(loadCtx, shortURL)
		if err != nil {
			return nil, err
		}
		if err := r.cache.SetStory(loadCtx, &st, StoryCacheTTL); err != nil {
			logrus.Warnf("failed to cache story %s: %v", shortURL, err)
		}
		return st, nil
	})
	if err != nil {
		return domain.Story{}, err
	}
	return result.(domain.Story), nil
}

func (r *storyRepository) Store(ctx context.Context, s *domain.Story) error {
	return r.db.Store(ctx, s)
}

func (r *storyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Delete(ctx, id)
}

func (r *storyRepository) ToggleVote(ctx context.Context, userID int64, storyID int64) (bool, error) {
	return r.db.ToggleVote(ctx, userID, storyID)
}

func (r *storyRepository) HasVoted(ctx context.Context, userID int64, storyID int64) (bool, error) {
	return r.db.HasVoted(ctx, userID, storyID)
}

func (r *storyRepository) RefreshAggregates(ctx context.Context, ids []int64) error {
	return r.db.RefreshAggregates(ctx, ids)
}

func (r *storyRepository) FetchShortURLs(ctx context.Context, afterID int64, limit int64) ([]int64, []string, error) {
	return r.db.FetchShortURLs(ctx, afterID, limit)
}

// rebuildFrontPage 异步重建首页缓存
func (r *storyRepository) rebuildFrontPage(ctx context.Context, q domain.StoryQuery) {
	_, err, _ := r.rebuildGroup.Do("front:"+q.Order, func() (any, error) {
		stories, err := r.db.Fetch(ctx, q, 0)
		if err != nil {
			return nil, err
		}
		return nil, r.cache.SetFrontPage(ctx, q.Order, stories, FrontPageCacheTTL)
	})
	if err != nil {
		logrus.Errorf("rebuildFrontPage failed for %s: %v", q.Order, err)
	}
}

// rebuildStoryCache 异步重建故事缓存
func (r *storyRepository) rebuildStoryCache(ctx context.Context, shortURL string) {
	// 检查是否已经在重建中
	r.mu.Lock()
	if r.rebuildingMap[shortURL] {
		r.mu.Unlock()
		return
	}
	r.rebuildingMap[shortURL] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.rebuildingMap, shortURL)
		r.mu.Unlock()
	}()

	_, err, _ := r.rebuildGroup.Do("rebuild:"+shortURL, func() (any, error) {
		st, err := r.db.GetByShortURL(ctx, shortURL)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// 已删除，清掉缓存
				_ = r.cache.DeleteStory(ctx, shortURL)
			}
			return nil, err
		}
		return nil, r.cache.SetStory(ctx, &st, StoryCacheTTL)
	})
	if err != nil {
		logrus.Errorf("rebuildStoryCache failed for %s: %v", shortURL, err)
	}
}
