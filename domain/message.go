package domain

import (
	"context"
	"time"
)

const (
	MessageSubjectMaxLength = 100
	MessageBodyMaxLength    = 8192
)

// Message is a private message between two users.
type Message struct {
	ID                 int64
	ShortID            string
	AuthorUserID       int64
	RecipientUserID    int64
	Subject            string
	Body               string
	BodyHTML           string
	HasBeenRead        bool
	DeletedByAuthor    bool
	DeletedByRecipient bool
	CreatedAt          time.Time

	Author    User
	Recipient User
}

// NewMessage is the input of Send.
type NewMessage struct {
	AuthorID          int64
	RecipientUsername string
	Subject           string
	Body              string
}

type MessageRepository interface {
	Store(ctx context.Context, m *Message) error
	GetByShortID(ctx context.Context, shortID string) (Message, error)
	// FetchInbox excludes messages the recipient deleted.
	FetchInbox(ctx context.Context, userID int64) ([]Message, error)
	// FetchOutbox excludes messages the author deleted.
	FetchOutbox(ctx context.Context, userID int64) ([]Message, error)
	MarkRead(ctx context.Context, id int64) error
	// Update persists the deletion flags.
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id int64) error
}

type MessageUsecase interface {
	Send(ctx context.Context, in NewMessage) (*Message, error)
	Inbox(ctx context.Context, userID int64) ([]Message, error)
	Outbox(ctx context.Context, userID int64) ([]Message, error)
	Get(ctx context.Context, shortID string, viewerID int64) (Message, error)
	Delete(ctx context.Context, shortID string, viewerID int64) error
}
