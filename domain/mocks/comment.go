package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// CommentRepository is a mock type for domain.CommentRepository
type CommentRepository struct {
	mock.Mock
}

var _ domain.CommentRepository = (*CommentRepository)(nil)

func (m *CommentRepository) FetchForStory(ctx context.Context, storyID int64, fields domain.CommentFields) ([]domain.Comment, error) {
	args := m.Called(ctx, storyID, fields)
	res, _ := args.Get(0).([]domain.Comment)
	return res, args.Error(1)
}

func (m *CommentRepository) FetchRecent(ctx context.Context, cursor string, num int64) ([]domain.Comment, error) {
	args := m.Called(ctx, cursor, num)
	res, _ := args.Get(0).([]domain.Comment)
	return res, args.Error(1)
}

func (m *CommentRepository) GetByShortURL(ctx context.Context, shortURL string) (domain.Comment, error) {
	args := m.Called(ctx, shortURL)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) MarkRead(ctx context.Context, userID int64, commentIDs []int64) error {
	args := m.Called(ctx, userID, commentIDs)
	return args.Error(0)
}

func (m *CommentRepository) ToggleVote(ctx context.Context, userID int64, commentID int64) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CommentUsecase is a mock type for domain.CommentUsecase
type CommentUsecase struct {
	mock.Mock
}

var _ domain.CommentUsecase = (*CommentUsecase)(nil)

func (m *CommentUsecase) FetchTree(ctx context.Context, storyID int64, viewerID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, storyID, viewerID)
	res, _ := args.Get(0).([]*domain.Comment)
	return res, args.Error(1)
}

func (m *CommentUsecase) FetchRecent(ctx context.Context, cursor string, num int64) ([]domain.Comment, string, error) {
	args := m.Called(ctx, cursor, num)
	res, _ := args.Get(0).([]domain.Comment)
	return res, args.String(1), args.Error(2)
}

func (m *CommentUsecase) GetByShortURL(ctx context.Context, shortURL string) (domain.Comment, error) {
	args := m.Called(ctx, shortURL)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *CommentUsecase) Create(ctx context.Context, in domain.CommentSubmission) (*domain.Comment, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.Comment)
	return res, args.Error(1)
}

func (m *CommentUsecase) CreateComment(ctx context.Context, in domain.NewComment) (*domain.Comment, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.Comment)
	return res, args.Error(1)
}

func (m *CommentUsecase) ToggleVote(ctx context.Context, shortURL string, userID int64) (bool, error) {
	args := m.Called(ctx, shortURL, userID)
	return args.Bool(0), args.Error(1)
}

func (m *CommentUsecase) Delete(ctx context.Context, shortURL string, userID int64) error {
	args := m.Called(ctx, shortURL, userID)
	return args.Error(0)
}
