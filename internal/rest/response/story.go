package response

import "github.com/Guyuepp/go-clean-forum/domain"

type Story struct {
	ShortURL        string   `json:"short_url"`
	Title           string   `json:"title"`
	URL             string   `json:"url,omitempty"`
	Description     string   `json:"description,omitempty"`
	DescriptionHTML string   `json:"description_html,omitempty"`
	Username        string   `json:"username"`
	Tags            []string `json:"tags"`
	Score           int64    `json:"score"`
	CommentsCount   int64    `json:"comments_count"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UserVoted       *bool    `json:"user_voted,omitempty"`
}

type StoryDetail struct {
	Story
	Comments []*Comment `json:"comments"`
}

// NewStoryFromDomain: Domain -> Response
func NewStoryFromDomain(s *domain.Story) Story {
	tags := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		tags[i] = t.Tag
	}
	return Story{
		ShortURL:        s.ShortURL,
		Title:           s.Title,
		URL:             s.URL,
		Description:     s.Description,
		DescriptionHTML: s.DescriptionHTML,
		Username:        s.User.Username,
		Tags:            tags,
		Score:           s.Score,
		CommentsCount:   s.CommentsCount,
		CreatedAt:       formatTime(s.CreatedAt),
		UserVoted:       s.UserVoted.Ptr(),
	}
}

func NewStoryListFromDomain(stories []domain.Story) []Story {
	res := make([]Story, len(stories))
	for i := range stories {
		res[i] = NewStoryFromDomain(&stories[i])
	}
	return res
}

func NewStoryDetailFromDomain(d *domain.StoryDetail) StoryDetail {
	return StoryDetail{
		Story:    NewStoryFromDomain(&d.Story),
		Comments: NewCommentTree(d.Comments),
	}
}

type Tag struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

func NewTagsFromDomain(tags []domain.Tag) []Tag {
	res := make([]Tag, len(tags))
	for i, t := range tags {
		res[i] = Tag{Tag: t.Tag, Description: t.Description}
	}
	return res
}
