package model

// CommentVote is keyed by (user_id, comment_id) only.
type CommentVote struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CommentID int64 `gorm:"primaryKey;autoIncrement:false;index"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (CommentVote) TableName() string {
	return "comment_votes"
}

type StoryVote struct {
	UserID  int64 `gorm:"primaryKey;autoIncrement:false"`
	StoryID int64 `gorm:"primaryKey;autoIncrement:false;index"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Story Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
}

func (StoryVote) TableName() string {
	return "story_votes"
}

// ReadComment is an append-only read marker.
type ReadComment struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CommentID int64 `gorm:"primaryKey;autoIncrement:false;index"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (ReadComment) TableName() string {
	return "read_comments"
}
