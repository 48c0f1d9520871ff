package request

import "github.com/Guyuepp/go-clean-forum/domain"

type Comment struct {
	Story   string `json:"story" binding:"required"`
	Parent  string `json:"parent"`
	Comment string `json:"comment"`
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain(userID int64) domain.CommentSubmission {
	return domain.CommentSubmission{
		StoryShortURL:  r.Story,
		ParentShortURL: r.Parent,
		AuthorID:       userID,
		Text:           r.Comment,
	}
}
