package domain

import (
	"context"
	"time"
)

const (
	// CommentMaxLength is measured in characters, not bytes.
	CommentMaxLength = 2000
	// ShortURLLength applies to stories, comments and messages.
	ShortURLLength = 6
)

// Comment is a single comment. Aggregates are only present when requested through CommentFields.
type Comment struct {
	ID          int64
	StoryID     int64
	UserID      int64
	ParentID    *int64 // nil for root-level comments
	ShortURL    string
	CommentedAt time.Time
	Comment     string
	CommentHTML string

	Score     Optional[int64]
	Username  Optional[string]
	UserVoted Optional[bool]
	UserRead  Optional[bool]
	StoryURL  Optional[string]

	// Children is filled by tree assembly only and never persisted.
	Children []*Comment
}

// IsRoot reports whether the comment has no parent.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// CommentFields selects the optional columns a fetch should join.
// ReadState and VoteState are ignored unless ViewerID is set.
type CommentFields struct {
	Score     bool
	Username  bool
	StoryURL  bool
	ViewerID  int64
	ReadState bool
	VoteState bool
}

// HasViewer reports whether per-viewer flags can be fetched.
func (f CommentFields) HasViewer() bool {
	return f.ViewerID > 0
}

// NewComment is the validated input of comment creation.
type NewComment struct {
	StoryID  int64
	Parent   *Comment
	AuthorID int64
	RawText  string
}

// CommentSubmission is what the delivery layer hands over: public short URLs instead of IDs.
type CommentSubmission struct {
	StoryShortURL  string
	ParentShortURL string
	AuthorID       int64
	Text           string
}

// CommentRepository is the comment store adapter.
type CommentRepository interface {
	// FetchForStory returns every comment of the story, one row each, unordered.
	// An empty story yields an empty slice and no error.
	FetchForStory(ctx context.Context, storyID int64, fields CommentFields) ([]Comment, error)

	// FetchRecent returns the newest comments site-wide with username and story URL.
	FetchRecent(ctx context.Context, cursor string, num int64) ([]Comment, error)

	// GetByShortURL returns ErrNotFound if no comment has this short URL.
	GetByShortURL(ctx context.Context, shortURL string) (Comment, error)

	// Store inserts the comment, the author's vote and the author's read marker in one transaction.
	// Backfills ID and CommentedAt. Returns ErrConflict on a short URL collision.
	Store(ctx context.Context, c *Comment) error

	// MarkRead inserts (userID, commentID) read markers; existing pairs are silently kept.
	MarkRead(ctx context.Context, userID int64, commentIDs []int64) error

	// ToggleVote adds the vote if absent and removes it if present, atomically.
	// Returns whether the user has a vote on the comment afterwards.
	ToggleVote(ctx context.Context, userID int64, commentID int64) (bool, error)

	// Delete removes the comment; dependent rows go with it.
	Delete(ctx context.Context, id int64) error
}

// CommentUsecase is the comment business logic.
type CommentUsecase interface {
	FetchTree(ctx context.Context, storyID int64, viewerID int64) ([]*Comment, error)
	FetchRecent(ctx context.Context, cursor string, num int64) ([]Comment, string, error)
	GetByShortURL(ctx context.Context, shortURL string) (Comment, error)
	Create(ctx context.Context, in CommentSubmission) (*Comment, error)
	CreateComment(ctx context.Context, in NewComment) (*Comment, error)
	ToggleVote(ctx context.Context, shortURL string, userID int64) (bool, error)
	Delete(ctx context.Context, shortURL string, userID int64) error
}
