package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-clean-forum/domain/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const viewerToken = "viewer-token"

type tokenStub struct{}

func (tokenStub) Parse(token string) (int64, error) {
	if token == viewerToken {
		return 9, nil
	}
	return 0, errors.New("bad token")
}

type server struct {
	engine   *gin.Engine
	stories  *mocks.StoryUsecase
	comments *mocks.CommentUsecase
	users    *mocks.UserUsecase
	tags     *mocks.TagUsecase
	messages *mocks.MessageUsecase
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := &server{
		engine:   gin.New(),
		stories:  new(mocks.StoryUsecase),
		comments: new(mocks.CommentUsecase),
		users:    new(mocks.UserUsecase),
		tags:     new(mocks.TagUsecase),
		messages: new(mocks.MessageUsecase),
	}
	RegisterRoutes(s.engine, Services{
		Stories:  s.stories,
		Comments: s.comments,
		Users:    s.users,
		Tags:     s.tags,
		Messages: s.messages,
	}, tokenStub{})

	t.Cleanup(func() {
		s.stories.AssertExpectations(t)
		s.comments.AssertExpectations(t)
		s.users.AssertExpectations(t)
		s.tags.AssertExpectations(t)
		s.messages.AssertExpectations(t)
	})
	return s
}

func (s *server) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+viewerToken)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}
