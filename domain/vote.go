package domain

// CommentVote is a (user, comment) vote row; a vote is binary, not a count.
type CommentVote struct {
	UserID    int64
	CommentID int64
}

// StoryVote is a (user, story) vote row.
type StoryVote struct {
	UserID  int64
	StoryID int64
}

// ReadMarker records that a user has seen a comment. Append-only.
type ReadMarker struct {
	UserID    int64
	CommentID int64
}
