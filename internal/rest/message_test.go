package rest

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-clean-forum/domain"
)

func TestMessages(t *testing.T) {
	msg := domain.Message{
		ShortID:   "mmmmmm",
		Subject:   "hi",
		Body:      "hello",
		BodyHTML:  "<p>hello</p>",
		Author:    domain.User{Username: "alice"},
		Recipient: domain.User{Username: "bob"},
		CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	t.Run("inbox hides bodies", func(t *testing.T) {
		s := newServer(t)
		s.messages.On("Inbox", mock.Anything, int64(9)).Return([]domain.Message{msg}, nil).Once()

		rec := s.do(t, http.MethodGet, "/messages", nil, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"author":"alice"`)
		assert.NotContains(t, rec.Body.String(), "hello")
	})

	t.Run("outbox", func(t *testing.T) {
		s := newServer(t)
		s.messages.On("Outbox", mock.Anything, int64(9)).Return([]domain.Message{}, nil).Once()

		rec := s.do(t, http.MethodGet, "/messages/sent", nil, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("send", func(t *testing.T) {
		s := newServer(t)
		in := domain.NewMessage{AuthorID: 9, RecipientUsername: "bob", Subject: "hi", Body: "hello"}
		s.messages.On("Send", mock.Anything, in).Return(&msg, nil).Once()

		rec := s.do(t, http.MethodPost, "/messages", map[string]string{"recipient": "bob", "subject": "hi", "body": "hello"}, true)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "<p>hello</p>", body["body_html"])
		assert.Equal(t, "hello", body["body"])
		assert.Equal(t, "2025-03-01 09:30:00", body["created_at"])
	})

	t.Run("read someone else's", func(t *testing.T) {
		s := newServer(t)
		s.messages.On("Get", mock.Anything, "mmmmmm", int64(9)).Return(domain.Message{}, domain.ErrForbidden).Once()

		assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/messages/mmmmmm", nil, true).Code)
	})

	t.Run("delete", func(t *testing.T) {
		s := newServer(t)
		s.messages.On("Delete", mock.Anything, "mmmmmm", int64(9)).Return(nil).Once()

		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/messages/mmmmmm", nil, true).Code)
	})

	t.Run("unset timestamp is omitted", func(t *testing.T) {
		s := newServer(t)
		unsent := msg
		unsent.CreatedAt = time.Time{}
		s.messages.On("Outbox", mock.Anything, int64(9)).Return([]domain.Message{unsent}, nil).Once()

		rec := s.do(t, http.MethodGet, "/messages/sent", nil, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "created_at")
	})

	t.Run("requires auth", func(t *testing.T) {
		s := newServer(t)
		assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/messages", nil, false).Code)
	})
}
