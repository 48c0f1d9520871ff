package domain

import (
	"context"
	"time"
)

const (
	StoryTitleMinLength = 3
	StoryTitleMaxLength = 150
	StoryMaxTags        = 5

	// StoryOrderHottest sorts by cached hotness, paged by offset.
	StoryOrderHottest = "hottest"
	// StoryOrderNewest sorts by creation time, paged by cursor.
	StoryOrderNewest = "newest"
)

// Story is representing the Story data struct
type Story struct {
	ID              int64     // Unique identifier
	ShortURL        string    // Public identifier
	Title           string    // Story title
	URL             string    // Optional link
	Description     string    // Optional markdown text
	DescriptionHTML string    // Sanitized rendering of Description
	User            User      // Submitter
	Tags            []Tag     // Attached tags
	Score           int64     // Cached vote count
	CommentsCount   int64     // Cached number of comments
	Hotness         float64   // Cached ranking key, lower is hotter
	CreatedAt       time.Time // Submission timestamp

	UserVoted Optional[bool] // Only present for a signed-in viewer
}

// StoryDetail is a story page: the story, its tags and the ranked comment tree.
type StoryDetail struct {
	Story    Story
	Comments []*Comment
}

// StoryQuery selects a story listing.
type StoryQuery struct {
	Order  string
	Tag    string
	Page   int64
	Cursor string
	Num    int64
}

// NewStory is the input of a story submission.
type NewStory struct {
	UserID      int64
	Title       string
	URL         string
	Description string
	Tags        []string
}

// StoryRepository defines the contract for story data persistence
type StoryRepository interface {
	// Fetch retrieves a page of stories ordered as requested.
	// tagID of 0 means every tag.
	Fetch(ctx context.Context, q StoryQuery, tagID int64) ([]Story, error)

	// GetByShortURL returns ErrNotFound if the story doesn't exist.
	GetByShortURL(ctx context.Context, shortURL string) (Story, error)

	// Store creates the story, its taggings and the submitter's vote in one transaction.
	// Returns ErrConflict on a short URL collision.
	Store(ctx context.Context, s *Story) error

	// Delete removes a story by its ID.
	// Returns ErrNotFound if not exists
	Delete(ctx context.Context, id int64) error

	// ToggleVote adds or removes the user's vote atomically; reports whether a vote exists afterwards.
	ToggleVote(ctx context.Context, userID int64, storyID int64) (bool, error)

	// HasVoted reports whether the user voted on the story.
	HasVoted(ctx context.Context, userID int64, storyID int64) (bool, error)

	// RefreshAggregates recounts votes and comments and recomputes hotness.
	RefreshAggregates(ctx context.Context, ids []int64) error

	// FetchShortURLs pages through every story short URL ordered by ID.
	FetchShortURLs(ctx context.Context, afterID int64, limit int64) (ids []int64, shortURLs []string, err error)
}

// StoryCache caches stories by short URL, and first listing pages by key, with logical expiry.
// A miss is reported as ErrCacheMiss.
type StoryCache interface {
	GetStory(ctx context.Context, shortURL string) (res Story, expired bool, err error)
	SetStory(ctx context.Context, s *Story, ttl time.Duration) error
	DeleteStory(ctx context.Context, shortURL string) error
	GetFrontPage(ctx context.Context, key string) (res []Story, expired bool, err error)
	SetFrontPage(ctx context.Context, key string, stories []Story, ttl time.Duration) error
}

type StoryUsecase interface {
	Fetch(ctx context.Context, q StoryQuery) ([]Story, string, error)
	GetByShortURL(ctx context.Context, shortURL string, viewerID int64) (StoryDetail, error)
	Submit(ctx context.Context, in NewStory) (*Story, error)
	Delete(ctx context.Context, shortURL string, userID int64) error
	ToggleVote(ctx context.Context, shortURL string, userID int64) (bool, error)
	InitBloomFilter(ctx context.Context) error
}
