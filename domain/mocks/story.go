package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// StoryRepository is a mock type for domain.StoryRepository
type StoryRepository struct {
	mock.Mock
}

var _ domain.StoryRepository = (*StoryRepository)(nil)

func (m *StoryRepository) Fetch(ctx context.Context, q domain.StoryQuery, tagID int64) ([]domain.Story, error) {
	args := m.Called(ctx, q, tagID)
	res, _ := args.Get(0).([]domain.Story)
	return res, args.Error(1)
}

func (m *StoryRepository) GetByShortURL(ctx context.Context, shortURL string) (domain.Story, error) {
	args := m.Called(ctx, shortURL)
	return args.Get(0).(domain.Story), args.Error(1)
}

func (m *StoryRepository) Store(ctx context.Context, s *domain.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *StoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoryRepository) ToggleVote(ctx context.Context, userID int64, storyID int64) (bool, error) {
	args := m.Called(ctx, userID, storyID)
	return args.Bool(0), args.Error(1)
}

func (m *StoryRepository) HasVoted(ctx context.Context, userID int64, storyID int64) (bool, error) {
	args := m.Called(ctx, userID, storyID)
	return args.Bool(0), args.Error(1)
}

func (m *StoryRepository) RefreshAggregates(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *StoryRepository) FetchShortURLs(ctx context.Context, afterID int64, limit int64) ([]int64, []string, error) {
	args := m.Called(ctx, afterID, limit)
	ids, _ := args.Get(0).([]int64)
	urls, _ := args.Get(1).([]string)
	return ids, urls, args.Error(2)
}

// StoryCache is a mock type for domain.StoryCache
type StoryCache struct {
	mock.Mock
}

var _ domain.StoryCache = (*StoryCache)(nil)

func (m *StoryCache) GetStory(ctx context.Context, shortURL string) (domain.Story, bool, error) {
	args := m.Called(ctx, shortURL)
	return args.Get(0).(domain.Story), args.Bool(1), args.Error(2)
}

func (m *StoryCache) SetStory(ctx context.Context, s *domain.Story, ttl time.Duration) error {
	args := m.Called(ctx, s, ttl)
	return args.Error(0)
}

func (m *StoryCache) DeleteStory(ctx context.Context, shortURL string) error {
	args := m.Called(ctx, shortURL)
	return args.Error(0)
}

func (m *StoryCache) GetFrontPage(ctx context.Context, key string) ([]domain.Story, bool, error) {
	args := m.Called(ctx, key)
	res, _ := args.Get(0).([]domain.Story)
	return res, args.Bool(1), args.Error(2)
}

func (m *StoryCache) SetFrontPage(ctx context.Context, key string, stories []domain.Story, ttl time.Duration) error {
	args := m.Called(ctx, key, stories, ttl)
	return args.Error(0)
}

// StoryUsecase is a mock type for domain.StoryUsecase
type StoryUsecase struct {
	mock.Mock
}

var _ domain.StoryUsecase = (*StoryUsecase)(nil)

func (m *StoryUsecase) Fetch(ctx context.Context, q domain.StoryQuery) ([]domain.Story, string, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).([]domain.Story)
	return res, args.String(1), args.Error(2)
}

func (m *StoryUsecase) GetByShortURL(ctx context.Context, shortURL string, viewerID int64) (domain.StoryDetail, error) {
	args := m.Called(ctx, shortURL, viewerID)
	return args.Get(0).(domain.StoryDetail), args.Error(1)
}

func (m *StoryUsecase) Submit(ctx context.Context, in domain.NewStory) (*domain.Story, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.Story)
	return res, args.Error(1)
}

func (m *StoryUsecase) Delete(ctx context.Context, shortURL string, userID int64) error {
	args := m.Called(ctx, shortURL, userID)
	return args.Error(0)
}

func (m *StoryUsecase) ToggleVote(ctx context.Context, shortURL string, userID int64) (bool, error) {
	args := m.Called(ctx, shortURL, userID)
	return args.Bool(0), args.Error(1)
}

func (m *StoryUsecase) InitBloomFilter(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// BloomRepository is a mock type for domain.BloomRepository
type BloomRepository struct {
	mock.Mock
}

var _ domain.BloomRepository = (*BloomRepository)(nil)

func (m *BloomRepository) Add(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *BloomRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *BloomRepository) BulkAdd(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// StoryHotnessWorker is a mock type for domain.StoryHotnessWorker
type StoryHotnessWorker struct {
	mock.Mock
}

var _ domain.StoryHotnessWorker = (*StoryHotnessWorker)(nil)

func (m *StoryHotnessWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *StoryHotnessWorker) Schedule(storyID int64) {
	m.Called(storyID)
}
