package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/domain/mocks"
)

func TestStoryGetByShortURL(t *testing.T) {
	ctx := context.Background()
	st := domain.Story{ID: 3, ShortURL: "abcdef", Title: "Go 1.24"}

	t.Run("cache hit", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		c.On("GetStory", mock.Anything, "abcdef").Return(st, false, nil).Once()

		res, err := NewStoryRepository(db, c).GetByShortURL(ctx, "abcdef")
		require.NoError(t, err)
		assert.Equal(t, st, res)
		db.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("cache miss fills the cache", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		c.On("GetStory", mock.Anything, "abcdef").Return(domain.Story{}, false, domain.ErrCacheMiss).Once()
		db.On("GetByShortURL", mock.Anything, "abcdef").Return(st, nil).Once()
		c.On("SetStory", mock.Anything, &st, StoryCacheTTL).Return(nil).Once()

		res, err := NewStoryRepository(db, c).GetByShortURL(ctx, "abcdef")
		require.NoError(t, err)
		assert.Equal(t, st, res)
		db.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("shared load ignores the caller's cancellation", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
		c.On("GetStory", mock.Anything, "abcdef").Return(domain.Story{}, false, domain.ErrCacheMiss).Once()
		db.On("GetByShortURL", live, "abcdef").Return(st, nil).Once()
		c.On("SetStory", live, &st, StoryCacheTTL).Return(nil).Once()

		res, err := NewStoryRepository(db, c).GetByShortURL(canceled, "abcdef")
		require.NoError(t, err)
		assert.Equal(t, st, res)
		db.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		c.On("GetStory", mock.Anything, "zzzzzz").Return(domain.Story{}, false, domain.ErrCacheMiss).Once()
		db.On("GetByShortURL", mock.Anything, "zzzzzz").Return(domain.Story{}, domain.ErrNotFound).Once()

		_, err := NewStoryRepository(db, c).GetByShortURL(ctx, "zzzzzz")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		c.AssertNotCalled(t, "SetStory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired entry is served and rebuilt", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		fresh := st
		fresh.Score = 9
		rebuilt := make(chan struct{})
		c.On("GetStory", mock.Anything, "abcdef").Return(st, true, nil).Once()
		db.On("GetByShortURL", mock.Anything, "abcdef").Return(fresh, nil).Once()
		c.On("SetStory", mock.Anything, &fresh, StoryCacheTTL).Return(nil).Once().
			Run(func(mock.Arguments) { close(rebuilt) })

		res, err := NewStoryRepository(db, c).GetByShortURL(ctx, "abcdef")
		require.NoError(t, err)
		assert.Equal(t, st, res)

		select {
		case <-rebuilt:
		case <-time.After(time.Second):
			t.Fatal("cache was not rebuilt")
		}
	})
}

func TestStoryFetch(t *testing.T) {
	ctx := context.Background()
	stories := []domain.Story{{ID: 1}, {ID: 2}}

	t.Run("front page from cache", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		c.On("GetFrontPage", mock.Anything, domain.StoryOrderHottest).Return(stories, false, nil).Once()

		q := domain.StoryQuery{Order: domain.StoryOrderHottest, Page: 1, Num: DefaultPageNum}
		res, err := NewStoryRepository(db, c).Fetch(ctx, q, 0)
		require.NoError(t, err)
		assert.Equal(t, stories, res)
		db.AssertExpectations(t)
	})

	t.Run("front page miss is cached", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		q := domain.StoryQuery{Order: domain.StoryOrderNewest, Page: 1, Num: DefaultPageNum}
		cached := make(chan struct{})
		c.On("GetFrontPage", mock.Anything, domain.StoryOrderNewest).Return(nil, false, domain.ErrCacheMiss).Once()
		db.On("Fetch", mock.Anything, q, int64(0)).Return(stories, nil).Once()
		c.On("SetFrontPage", mock.Anything, domain.StoryOrderNewest, stories, FrontPageCacheTTL).Return(nil).Once().
			Run(func(mock.Arguments) { close(cached) })

		res, err := NewStoryRepository(db, c).Fetch(ctx, q, 0)
		require.NoError(t, err)
		assert.Equal(t, stories, res)

		select {
		case <-cached:
		case <-time.After(time.Second):
			t.Fatal("front page was not cached")
		}
	})

	t.Run("other pages skip the cache", func(t *testing.T) {
		db, c := new(mocks.StoryRepository), new(mocks.StoryCache)
		q := domain.StoryQuery{Order: domain.StoryOrderHottest, Page: 2, Num: DefaultPageNum}
		db.On("Fetch", mock.Anything, q, int64(5)).Return(stories, nil).Once()

		res, err := NewStoryRepository(db, c).Fetch(ctx, q, 5)
		require.NoError(t, err)
		assert.Equal(t, stories, res)
		c.AssertExpectations(t)
		db.AssertExpectations(t)
	})
}
