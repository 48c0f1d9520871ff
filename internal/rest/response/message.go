package response

import "github.com/Guyuepp/go-clean-forum/domain"

type Message struct {
	ShortID     string `json:"short_id"`
	Author      string `json:"author"`
	Recipient   string `json:"recipient"`
	Subject     string `json:"subject"`
	Body        string `json:"body,omitempty"`
	BodyHTML    string `json:"body_html,omitempty"`
	HasBeenRead bool   `json:"has_been_read"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// NewMessageFromDomain leaves the body out unless full is set.
func NewMessageFromDomain(m *domain.Message, full bool) Message {
	res := Message{
		ShortID:     m.ShortID,
		Author:      m.Author.Username,
		Recipient:   m.Recipient.Username,
		Subject:     m.Subject,
		HasBeenRead: m.HasBeenRead,
		CreatedAt:   formatTime(m.CreatedAt),
	}
	if full {
		res.Body = m.Body
		res.BodyHTML = m.BodyHTML
	}
	return res
}

func NewMessageListFromDomain(msgs []domain.Message) []Message {
	res := make([]Message, len(msgs))
	for i := range msgs {
		res[i] = NewMessageFromDomain(&msgs[i], false)
	}
	return res
}
