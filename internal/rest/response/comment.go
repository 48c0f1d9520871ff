package response

import "github.com/Guyuepp/go-clean-forum/domain"

type Comment struct {
	ShortURL    string  `json:"short_url"`
	StoryURL    *string `json:"story_short_url,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	ID          int64   `json:"id"`
	Comment     string  `json:"comment"`
	CommentHTML string  `json:"comment_html"`
	CommentedAt string  `json:"commented_at"`

	Score     *int64  `json:"score,omitempty"`
	Username  *string `json:"username,omitempty"`
	UserVoted *bool   `json:"user_voted,omitempty"`
	UserRead  *bool   `json:"user_read,omitempty"`

	// Children 子评论，已排序
	Children []*Comment `json:"children"`
}

// NewSingleCommentFromDomain ignores the children of c.
func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ShortURL:    c.ShortURL,
		StoryURL:    c.StoryURL.Ptr(),
		ParentID:    c.ParentID,
		ID:          c.ID,
		Comment:     c.Comment,
		CommentHTML: c.CommentHTML,
		CommentedAt: c.CommentedAt.Format(DateTimeFormat),
		Score:       c.Score.Ptr(),
		Username:    c.Username.Ptr(),
		UserVoted:   c.UserVoted.Ptr(),
		UserRead:    c.UserRead.Ptr(),
		Children:    []*Comment{},
	}
}

// NewCommentFromDomain converts c and its whole subtree, keeping sibling order.
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	for _, child := range c.Children {
		root.Children = append(root.Children, NewCommentFromDomain(child))
	}
	return root
}

func NewCommentTree(roots []*domain.Comment) []*Comment {
	res := make([]*Comment, len(roots))
	for i, c := range roots {
		res[i] = NewCommentFromDomain(c)
	}
	return res
}
