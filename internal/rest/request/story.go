package request

import "github.com/Guyuepp/go-clean-forum/domain"

type Story struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (r *Story) ToDomain(userID int64) domain.NewStory {
	return domain.NewStory{
		UserID:      userID,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Tags:        r.Tags,
	}
}
