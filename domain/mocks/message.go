package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// MessageRepository is a mock type for domain.MessageRepository
type MessageRepository struct {
	mock.Mock
}

var _ domain.MessageRepository = (*MessageRepository)(nil)

func (m *MessageRepository) Store(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) GetByShortID(ctx context.Context, shortID string) (domain.Message, error) {
	args := m.Called(ctx, shortID)
	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *MessageRepository) FetchInbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]domain.Message)
	return res, args.Error(1)
}

func (m *MessageRepository) FetchOutbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]domain.Message)
	return res, args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepository) Update(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MessageUsecase is a mock type for domain.MessageUsecase
type MessageUsecase struct {
	mock.Mock
}

var _ domain.MessageUsecase = (*MessageUsecase)(nil)

func (m *MessageUsecase) Send(ctx context.Context, in domain.NewMessage) (*domain.Message, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.Message)
	return res, args.Error(1)
}

func (m *MessageUsecase) Inbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]domain.Message)
	return res, args.Error(1)
}

func (m *MessageUsecase) Outbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]domain.Message)
	return res, args.Error(1)
}

func (m *MessageUsecase) Get(ctx context.Context, shortID string, viewerID int64) (domain.Message, error) {
	args := m.Called(ctx, shortID, viewerID)
	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *MessageUsecase) Delete(ctx context.Context, shortID string, viewerID int64) error {
	args := m.Called(ctx, shortID, viewerID)
	return args.Error(0)
}
