package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/go-clean-forum/domain"
)

func TestCreateComment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newServer(t)
		in := domain.CommentSubmission{StoryShortURL: "abcdef", ParentShortURL: "parent", AuthorID: 9, Text: "hello"}
		created := &domain.Comment{
			ID:          11,
			ShortURL:    "cccccc",
			Comment:     "hello",
			CommentHTML: "<p>hello</p>",
			CommentedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			Score:       domain.Some(int64(1)),
			UserVoted:   domain.Some(true),
			UserRead:    domain.Some(true),
			Children:    []*domain.Comment{},
		}
		s.comments.On("Create", mock.Anything, in).Return(created, nil).Once()

		rec := s.do(t, http.MethodPost, "/c", map[string]string{"story": "abcdef", "parent": "parent", "comment": "hello"}, true)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{
			"short_url": "cccccc",
			"id": 11,
			"comment": "hello",
			"comment_html": "<p>hello</p>",
			"commented_at": "2025-03-01 12:00:00",
			"score": 1,
			"user_voted": true,
			"user_read": true,
			"children": []
		}`, rec.Body.String())
	})

	t.Run("validation errors", func(t *testing.T) {
		s := newServer(t)
		err := domain.NewValidationError([]string{"comment cannot be empty"})
		s.comments.On("Create", mock.Anything, mock.Anything).Return(nil, err).Once()

		rec := s.do(t, http.MethodPost, "/c", map[string]string{"story": "abcdef", "comment": "  "}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["comment cannot be empty"]}`, rec.Body.String())
	})

	t.Run("unknown story", func(t *testing.T) {
		s := newServer(t)
		s.comments.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()

		rec := s.do(t, http.MethodPost, "/c", map[string]string{"story": "zzzzzz", "comment": "hi"}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing story field", func(t *testing.T) {
		s := newServer(t)
		rec := s.do(t, http.MethodPost, "/c", map[string]string{"comment": "hi"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["story is required"]}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newServer(t)
		req := httptest.NewRequest(http.MethodPost, "/c", strings.NewReader(`{"story":`))
		req.Header.Set("Authorization", "Bearer "+viewerToken)
		rec := httptest.NewRecorder()
		s.engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["request body is not valid JSON"]}`, rec.Body.String())
	})

	t.Run("anonymous", func(t *testing.T) {
		s := newServer(t)
		rec := s.do(t, http.MethodPost, "/c", map[string]string{"story": "abcdef", "comment": "hi"}, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDeleteComment(t *testing.T) {
	s := newServer(t)
	s.comments.On("Delete", mock.Anything, "cccccc", int64(9)).Return(domain.ErrForbidden).Once()
	s.comments.On("Delete", mock.Anything, "dddddd", int64(9)).Return(nil).Once()

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/c/cccccc", nil, true).Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/c/dddddd", nil, true).Code)
}

func TestVoteComment(t *testing.T) {
	s := newServer(t)
	s.comments.On("ToggleVote", mock.Anything, "cccccc", int64(9)).Return(true, nil).Once()
	s.comments.On("ToggleVote", mock.Anything, "zzzzzz", int64(9)).Return(false, domain.ErrNotFound).Once()

	rec := s.do(t, http.MethodPost, "/c/cccccc/vote", nil, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"voted":true}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/c/zzzzzz/vote", nil, true).Code)
}

func TestFetchRecentComments(t *testing.T) {
	s := newServer(t)
	recent := []domain.Comment{{
		ID:        1,
		ShortURL:  "aaaaaa",
		Username:  domain.Some("gopher"),
		StoryURL:  domain.Some("abcdef"),
		Score:     domain.Some(int64(2)),
		Comment:   "hi",
		ParentID:  nil,
		UserVoted: domain.None[bool](),
	}}
	s.comments.On("FetchRecent", mock.Anything, "cur", int64(5)).Return(recent, "next", nil).Once()

	rec := s.do(t, http.MethodGet, "/comments?cursor=cur&num=5", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "next", rec.Header().Get("X-cursor"))
	assert.Contains(t, rec.Body.String(), `"story_short_url":"abcdef"`)
	assert.Contains(t, rec.Body.String(), `"username":"gopher"`)
	assert.NotContains(t, rec.Body.String(), "user_voted")
}

func TestGetCommentInternalError(t *testing.T) {
	s := newServer(t)
	s.comments.On("GetByShortURL", mock.Anything, "aaaaaa").Return(domain.Comment{}, errors.New("db gone")).Once()

	rec := s.do(t, http.MethodGet, "/c/aaaaaa", nil, false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}
