package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// TagRepository is a mock type for domain.TagRepository
type TagRepository struct {
	mock.Mock
}

var _ domain.TagRepository = (*TagRepository)(nil)

func (m *TagRepository) Fetch(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Tag)
	return res, args.Error(1)
}

func (m *TagRepository) GetByNames(ctx context.Context, names []string) ([]domain.Tag, error) {
	args := m.Called(ctx, names)
	res, _ := args.Get(0).([]domain.Tag)
	return res, args.Error(1)
}

func (m *TagRepository) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *TagRepository) FetchForStory(ctx context.Context, storyID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, storyID)
	res, _ := args.Get(0).([]domain.Tag)
	return res, args.Error(1)
}

// TagUsecase is a mock type for domain.TagUsecase
type TagUsecase struct {
	mock.Mock
}

var _ domain.TagUsecase = (*TagUsecase)(nil)

func (m *TagUsecase) Fetch(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Tag)
	return res, args.Error(1)
}
