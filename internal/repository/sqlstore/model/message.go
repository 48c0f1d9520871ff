package model

import (
	"time"

	"github.com/Guyuepp/go-clean-forum/domain"
)

type Message struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	ShortID            string    `gorm:"column:short_id;type:varchar(6);not null;uniqueIndex"`
	AuthorUserID       int64     `gorm:"column:author_user_id;not null;index"`
	RecipientUserID    int64     `gorm:"column:recipient_user_id;not null;index"`
	Subject            string    `gorm:"type:varchar(100);not null"`
	Body               string    `gorm:"type:text;not null"`
	BodyHTML           string    `gorm:"column:body_html;type:text;not null"`
	HasBeenRead        bool      `gorm:"column:has_been_read;not null;default:false"`
	DeletedByAuthor    bool      `gorm:"column:deleted_by_author;not null;default:false"`
	DeletedByRecipient bool      `gorm:"column:deleted_by_recipient;not null;default:false"`
	CreatedAt          time.Time `gorm:"not null"`

	Author    User `gorm:"foreignKey:AuthorUserID;constraint:OnDelete:CASCADE"`
	Recipient User `gorm:"foreignKey:RecipientUserID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}

func NewMessageFromDomain(m *domain.Message) *Message {
	return &Message{
		ID:                 m.ID,
		ShortID:            m.ShortID,
		AuthorUserID:       m.AuthorUserID,
		RecipientUserID:    m.RecipientUserID,
		Subject:            m.Subject,
		Body:               m.Body,
		BodyHTML:           m.BodyHTML,
		HasBeenRead:        m.HasBeenRead,
		DeletedByAuthor:    m.DeletedByAuthor,
		DeletedByRecipient: m.DeletedByRecipient,
		CreatedAt:          m.CreatedAt,
	}
}

// MessageRow is a message joined with both participants' names.
type MessageRow struct {
	ID                 int64     `gorm:"column:id"`
	ShortID            string    `gorm:"column:short_id"`
	AuthorUserID       int64     `gorm:"column:author_user_id"`
	RecipientUserID    int64     `gorm:"column:recipient_user_id"`
	Subject            string    `gorm:"column:subject"`
	Body               string    `gorm:"column:body"`
	BodyHTML           string    `gorm:"column:body_html"`
	HasBeenRead        bool      `gorm:"column:has_been_read"`
	DeletedByAuthor    bool      `gorm:"column:deleted_by_author"`
	DeletedByRecipient bool      `gorm:"column:deleted_by_recipient"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	AuthorUsername     string    `gorm:"column:author_username"`
	RecipientUsername  string    `gorm:"column:recipient_username"`
}

func (r *MessageRow) ToDomain() domain.Message {
	return domain.Message{
		ID:                 r.ID,
		ShortID:            r.ShortID,
		AuthorUserID:       r.AuthorUserID,
		RecipientUserID:    r.RecipientUserID,
		Subject:            r.Subject,
		Body:               r.Body,
		BodyHTML:           r.BodyHTML,
		HasBeenRead:        r.HasBeenRead,
		DeletedByAuthor:    r.DeletedByAuthor,
		DeletedByRecipient: r.DeletedByRecipient,
		CreatedAt:          r.CreatedAt,
		Author:             domain.User{ID: r.AuthorUserID, Username: r.AuthorUsername},
		Recipient:          domain.User{ID: r.RecipientUserID, Username: r.RecipientUsername},
	}
}

// All lists every table in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Story{},
		&Tag{},
		&Tagging{},
		&Comment{},
		&CommentVote{},
		&StoryVote{},
		&ReadComment{},
		&Message{},
	}
}
