package model

import (
	"time"

	"github.com/Guyuepp/go-clean-forum/domain"
)

type Story struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	UserID          int64     `gorm:"column:user_id;not null;index"`
	ShortURL        string    `gorm:"column:short_url;type:varchar(6);not null;uniqueIndex"`
	Title           string    `gorm:"type:varchar(150);not null"`
	URL             string    `gorm:"column:url;type:varchar(250);not null;default:''"`
	Description     string    `gorm:"type:text"`
	DescriptionHTML string    `gorm:"column:description_html;type:text"`
	Score           int64     `gorm:"not null;default:0"`
	CommentsCount   int64     `gorm:"column:comments_count;not null;default:0"`
	Hotness         float64   `gorm:"not null;default:0;index"`
	CreatedAt       time.Time `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Story) TableName() string {
	return "stories"
}

func (m *Story) ToDomain() domain.Story {
	return domain.Story{
		ID:              m.ID,
		ShortURL:        m.ShortURL,
		Title:           m.Title,
		URL:             m.URL,
		Description:     m.Description,
		DescriptionHTML: m.DescriptionHTML,
		User: domain.User{
			ID: m.UserID,
		},
		Score:         m.Score,
		CommentsCount: m.CommentsCount,
		Hotness:       m.Hotness,
		CreatedAt:     m.CreatedAt,
	}
}

func NewStoryFromDomain(s *domain.Story) *Story {
	return &Story{
		ID:              s.ID,
		UserID:          s.User.ID,
		ShortURL:        s.ShortURL,
		Title:           s.Title,
		URL:             s.URL,
		Description:     s.Description,
		DescriptionHTML: s.DescriptionHTML,
		Score:           s.Score,
		CommentsCount:   s.CommentsCount,
		Hotness:         s.Hotness,
		CreatedAt:       s.CreatedAt,
	}
}

// StoryRow is a story joined with its submitter's name.
type StoryRow struct {
	Story
	Username string `gorm:"column:username"`
}

func (r *StoryRow) ToDomain() domain.Story {
	s := r.Story.ToDomain()
	s.User.Username = r.Username
	return s
}

type Tag struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Tag         string `gorm:"type:varchar(25);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(100);not null;default:''"`
}

func (Tag) TableName() string {
	return "tags"
}

func (m *Tag) ToDomain() domain.Tag {
	return domain.Tag{
		ID:          m.ID,
		Tag:         m.Tag,
		Description: m.Description,
	}
}

type Tagging struct {
	StoryID int64 `gorm:"primaryKey;autoIncrement:false"`
	TagID   int64 `gorm:"primaryKey;autoIncrement:false"`

	Story Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
	Tag   Tag   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (Tagging) TableName() string {
	return "taggings"
}
