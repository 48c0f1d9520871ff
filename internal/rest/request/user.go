package request

import "github.com/Guyuepp/go-clean-forum/domain"

type Register struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Message struct {
	Recipient string `json:"recipient" binding:"required"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func (r *Message) ToDomain(authorID int64) domain.NewMessage {
	return domain.NewMessage{
		AuthorID:          authorID,
		RecipientUsername: r.Recipient,
		Subject:           r.Subject,
		Body:              r.Body,
	}
}
