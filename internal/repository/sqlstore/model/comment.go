package model

import (
	"time"

	"github.com/Guyuepp/go-clean-forum/domain"
)

type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	StoryID     int64     `gorm:"column:story_id;not null;index"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	ParentID    *int64    `gorm:"column:parent_id;index"`
	ShortURL    string    `gorm:"column:short_url;type:varchar(6);not null;uniqueIndex"`
	Comment     string    `gorm:"type:text;not null"`
	CommentHTML string    `gorm:"column:comment_html;type:text;not null"`
	CommentedAt time.Time `gorm:"column:commented_at;not null;index;autoCreateTime"`

	Story  Story    `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
	User   User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Parent *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:          c.ID,
		StoryID:     c.StoryID,
		UserID:      c.UserID,
		ParentID:    c.ParentID,
		ShortURL:    c.ShortURL,
		Comment:     c.Comment,
		CommentHTML: c.CommentHTML,
		CommentedAt: c.CommentedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:          m.ID,
		StoryID:     m.StoryID,
		UserID:      m.UserID,
		ParentID:    m.ParentID,
		ShortURL:    m.ShortURL,
		Comment:     m.Comment,
		CommentHTML: m.CommentHTML,
		CommentedAt: m.CommentedAt,
	}
}

// CommentRow is a comments row plus the optional aggregates a fetch asked for.
// A nil pointer means the column was not selected.
type CommentRow struct {
	ID          int64     `gorm:"column:id"`
	StoryID     int64     `gorm:"column:story_id"`
	UserID      int64     `gorm:"column:user_id"`
	ParentID    *int64    `gorm:"column:parent_id"`
	ShortURL    string    `gorm:"column:short_url"`
	Comment     string    `gorm:"column:comment"`
	CommentHTML string    `gorm:"column:comment_html"`
	CommentedAt time.Time `gorm:"column:commented_at"`

	Score     *int64  `gorm:"column:score"`
	Username  *string `gorm:"column:username"`
	UserRead  *bool   `gorm:"column:user_read"`
	UserVoted *bool   `gorm:"column:user_voted"`
	StoryURL  *string `gorm:"column:story_url"`
}

func (r *CommentRow) ToDomain() domain.Comment {
	return domain.Comment{
		ID:          r.ID,
		StoryID:     r.StoryID,
		UserID:      r.UserID,
		ParentID:    r.ParentID,
		ShortURL:    r.ShortURL,
		Comment:     r.Comment,
		CommentHTML: r.CommentHTML,
		CommentedAt: r.CommentedAt,
		Score:       domain.FromPtr(r.Score),
		Username:    domain.FromPtr(r.Username),
		UserRead:    domain.FromPtr(r.UserRead),
		UserVoted:   domain.FromPtr(r.UserVoted),
		StoryURL:    domain.FromPtr(r.StoryURL),
	}
}
