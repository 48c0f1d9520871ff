package response

import (
	"time"

	"github.com/Guyuepp/go-clean-forum/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type User struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

func NewUserFromDomain(u domain.User) *User {
	return &User{Username: u.Username, CreatedAt: formatTime(u.CreatedAt)}
}

// formatTime leaves unset timestamps empty so omitempty drops them.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeFormat)
}

type Token struct {
	Token string `json:"token"`
}
