package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/domain/mocks"
	"github.com/Guyuepp/go-clean-forum/internal/markdown"
	"github.com/Guyuepp/go-clean-forum/internal/repository"
)

type fixture struct {
	svc     *Service
	comment *mocks.CommentRepository
	story   *mocks.StoryRepository
	bloom   *mocks.BloomRepository
	worker  *mocks.StoryHotnessWorker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		comment: new(mocks.CommentRepository),
		story:   new(mocks.StoryRepository),
		bloom:   new(mocks.BloomRepository),
		worker:  new(mocks.StoryHotnessWorker),
	}
	f.svc = NewService(f.comment, f.story, f.bloom, f.worker, markdown.NewRenderer())

	n := 0
	f.svc.newShortURL = func() (string, error) {
		n++
		return fmt.Sprintf("abc%03d", n), nil
	}

	t.Cleanup(func() {
		f.comment.AssertExpectations(t)
		f.story.AssertExpectations(t)
		f.bloom.AssertExpectations(t)
		f.worker.AssertExpectations(t)
	})
	return f
}

func readRow(id, parentID int64, read domain.Optional[bool]) domain.Comment {
	c := row(id, parentID, 1)
	c.UserRead = read
	return c
}

func TestUnreadIDs(t *testing.T) {
	rows := []domain.Comment{
		readRow(1, 0, domain.Some(true)),
		readRow(2, 1, domain.Some(false)),
		readRow(3, 1, domain.None[bool]()),
		readRow(4, 0, domain.Some(false)),
	}
	roots := AssembleTree(rows)

	assert.ElementsMatch(t, []int64{2, 4}, UnreadIDs(roots, true))
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, UnreadIDs(roots, false))
	assert.Empty(t, UnreadIDs(nil, false))
}

func TestMarkTreeRead(t *testing.T) {
	ctx := context.Background()

	t.Run("all read issues no write", func(t *testing.T) {
		f := newFixture(t)
		roots := AssembleTree([]domain.Comment{
			readRow(1, 0, domain.Some(true)),
			readRow(2, 1, domain.Some(true)),
		})

		require.NoError(t, f.svc.MarkTreeRead(ctx, 7, roots, true))
		f.comment.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unfetched flags are not unread", func(t *testing.T) {
		f := newFixture(t)
		roots := AssembleTree([]domain.Comment{row(1, 0, 1), row(2, 1, 1)})

		require.NoError(t, f.svc.MarkTreeRead(ctx, 7, roots, true))
		f.comment.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("one unread node is one id", func(t *testing.T) {
		f := newFixture(t)
		roots := AssembleTree([]domain.Comment{
			readRow(1, 0, domain.Some(true)),
			readRow(2, 1, domain.Some(false)),
			readRow(3, 1, domain.Some(true)),
		})
		f.comment.On("MarkRead", mock.Anything, int64(7), []int64{2}).Return(nil).Once()

		require.NoError(t, f.svc.MarkTreeRead(ctx, 7, roots, true))
	})

	t.Run("without the optimization every node is sent", func(t *testing.T) {
		f := newFixture(t)
		roots := AssembleTree([]domain.Comment{
			readRow(1, 0, domain.Some(true)),
			readRow(2, 1, domain.None[bool]()),
		})
		var sent []int64
		f.comment.On("MarkRead", mock.Anything, int64(7), mock.AnythingOfType("[]int64")).
			Run(func(args mock.Arguments) { sent = args.Get(2).([]int64) }).
			Return(nil).Once()

		require.NoError(t, f.svc.MarkTreeRead(ctx, 7, roots, false))
		assert.ElementsMatch(t, []int64{1, 2}, sent)
	})

	t.Run("marking twice is harmless", func(t *testing.T) {
		f := newFixture(t)
		roots := AssembleTree([]domain.Comment{row(1, 0, 1)})
		f.comment.On("MarkRead", mock.Anything, int64(7), []int64{1}).Return(nil).Twice()

		require.NoError(t, f.svc.MarkTreeRead(ctx, 7, roots, false))
		require.NoError(t, f.svc.MarkTreeRead(ctx, 7, roots, false))
	})

	t.Run("store error propagates", func(t *testing.T) {
		f := newFixture(t)
		roots := AssembleTree([]domain.Comment{readRow(1, 0, domain.Some(false))})
		boom := errors.New("connection reset")
		f.comment.On("MarkRead", mock.Anything, int64(7), []int64{1}).Return(boom).Once()

		assert.ErrorIs(t, f.svc.MarkTreeRead(ctx, 7, roots, true), boom)
	})
}

func TestFetchTree(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous viewer", func(t *testing.T) {
		f := newFixture(t)
		fields := domain.CommentFields{Score: true, Username: true}
		f.comment.On("FetchForStory", mock.Anything, int64(1), fields).
			Return([]domain.Comment{row(1, 0, 0), row(2, 0, 5), row(3, 1, 2)}, nil).Once()

		roots, err := f.svc.FetchTree(ctx, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, ids(roots))
		assert.Equal(t, []int64{3}, ids(roots[1].Children))
	})

	t.Run("signed in viewer gets unread comments marked", func(t *testing.T) {
		f := newFixture(t)
		fields := domain.CommentFields{Score: true, Username: true, ViewerID: 9, ReadState: true, VoteState: true}
		f.comment.On("FetchForStory", mock.Anything, int64(1), fields).
			Return([]domain.Comment{
				readRow(1, 0, domain.Some(true)),
				readRow(2, 1, domain.Some(false)),
			}, nil).Once()
		f.comment.On("MarkRead", mock.Anything, int64(9), []int64{2}).Return(nil).Once()

		roots, err := f.svc.FetchTree(ctx, 1, 9)
		require.NoError(t, err)

		read, ok := roots[0].Children[0].UserRead.Get()
		assert.True(t, ok)
		assert.False(t, read)
	})

	t.Run("empty story", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("FetchForStory", mock.Anything, int64(3), mock.Anything).Return([]domain.Comment{}, nil).Once()

		roots, err := f.svc.FetchTree(ctx, 3, 9)
		require.NoError(t, err)
		assert.Empty(t, roots)
	})

	t.Run("store error", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("FetchForStory", mock.Anything, int64(1), mock.Anything).Return(nil, domain.ErrInternalServerError).Once()

		_, err := f.svc.FetchTree(ctx, 1, 0)
		assert.ErrorIs(t, err, domain.ErrInternalServerError)
	})
}

func TestCreateCommentValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 1, RawText: ""})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Messages, msgCommentEmpty)
	})

	t.Run("whitespace only", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 1, RawText: " \n\t "})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{msgCommentEmpty}, ve.Messages)
	})

	t.Run("parent from another story", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateComment(ctx, domain.NewComment{
			StoryID:  5,
			Parent:   &domain.Comment{ID: 1, StoryID: 9},
			AuthorID: 1,
			RawText:  "hi",
		})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{msgParentMismatch}, ve.Messages)
	})

	t.Run("all violations are collected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateComment(ctx, domain.NewComment{
			StoryID: 5,
			Parent:  &domain.Comment{ID: 1, StoryID: 9},
			RawText: "",
		})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{msgCommentEmpty, msgParentMismatch}, ve.Messages)
	})

	t.Run("length counts characters", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()

		_, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 1, RawText: strings.Repeat("é", domain.CommentMaxLength)})
		require.NoError(t, err)

		_, err = f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 1, RawText: strings.Repeat("é", domain.CommentMaxLength+1)})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{msgCommentTooLong}, ve.Messages)
		assert.Equal(t, "comment is too long (maximum is 2000 characters)", msgCommentTooLong)
	})
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("reply", func(t *testing.T) {
		f := newFixture(t)
		text := faker.Sentence() + " *emphasis*"
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).
			Run(func(args mock.Arguments) {
				c := args.Get(1).(*domain.Comment)
				c.ID = 42
				c.CommentedAt = time.Now()
			}).
			Return(nil).Once()

		c, err := f.svc.CreateComment(ctx, domain.NewComment{
			StoryID:  5,
			Parent:   &domain.Comment{ID: 3, StoryID: 5},
			AuthorID: 8,
			RawText:  text,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(42), c.ID)
		assert.Equal(t, int64(5), c.StoryID)
		assert.Equal(t, int64(8), c.UserID)
		require.NotNil(t, c.ParentID)
		assert.Equal(t, int64(3), *c.ParentID)
		assert.Equal(t, "abc001", c.ShortURL)
		assert.Equal(t, text, c.Comment)
		assert.Contains(t, c.CommentHTML, "<em>emphasis</em>")
		assert.Equal(t, domain.Some[int64](1), c.Score)
		assert.Equal(t, domain.Some(true), c.UserVoted)
		assert.Equal(t, domain.Some(true), c.UserRead)
		assert.NotNil(t, c.Children)
		assert.Empty(t, c.Children)
	})

	t.Run("root comment", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()

		c, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 8, RawText: faker.Sentence()})
		require.NoError(t, err)
		assert.True(t, c.IsRoot())
	})

	t.Run("short url collision is retried", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(domain.ErrConflict).Once()
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()

		c, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 8, RawText: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "abc002", c.ShortURL)
	})

	t.Run("collisions give up after three attempts", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(domain.ErrConflict).Times(3)

		_, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 8, RawText: "hello"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("other store errors are not retried", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("deadlock")
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(boom).Once()

		_, err := f.svc.CreateComment(ctx, domain.NewComment{StoryID: 5, AuthorID: 8, RawText: "hello"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	story := domain.Story{ID: 5, ShortURL: "st0ry1"}

	t.Run("reply by short urls", func(t *testing.T) {
		f := newFixture(t)
		f.bloom.On("Exists", mock.Anything, "st0ry1").Return(true, nil).Once()
		f.story.On("GetByShortURL", mock.Anything, "st0ry1").Return(story, nil).Once()
		f.comment.On("GetByShortURL", mock.Anything, "par3nt").Return(domain.Comment{ID: 3, StoryID: 5}, nil).Once()
		f.comment.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()
		f.worker.On("Schedule", int64(5)).Once()

		c, err := f.svc.Create(ctx, domain.CommentSubmission{
			StoryShortURL:  "st0ry1",
			ParentShortURL: "par3nt",
			AuthorID:       8,
			Text:           "agreed",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), *c.ParentID)
		assert.Equal(t, domain.Some("st0ry1"), c.StoryURL)
	})

	t.Run("bloom filter rejects unknown story", func(t *testing.T) {
		f := newFixture(t)
		f.bloom.On("Exists", mock.Anything, "nope00").Return(false, nil).Once()

		_, err := f.svc.Create(ctx, domain.CommentSubmission{StoryShortURL: "nope00", AuthorID: 8, Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing story", func(t *testing.T) {
		f := newFixture(t)
		f.bloom.On("Exists", mock.Anything, "gone00").Return(false, errors.New("redis down")).Once()
		f.story.On("GetByShortURL", mock.Anything, "gone00").Return(domain.Story{}, domain.ErrNotFound).Once()

		_, err := f.svc.Create(ctx, domain.CommentSubmission{StoryShortURL: "gone00", AuthorID: 8, Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing parent", func(t *testing.T) {
		f := newFixture(t)
		f.bloom.On("Exists", mock.Anything, "st0ry1").Return(true, nil).Once()
		f.story.On("GetByShortURL", mock.Anything, "st0ry1").Return(story, nil).Once()
		f.comment.On("GetByShortURL", mock.Anything, "zzzzzz").Return(domain.Comment{}, domain.ErrNotFound).Once()

		_, err := f.svc.Create(ctx, domain.CommentSubmission{StoryShortURL: "st0ry1", ParentShortURL: "zzzzzz", AuthorID: 8, Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("validation error skips the refresh", func(t *testing.T) {
		f := newFixture(t)
		f.bloom.On("Exists", mock.Anything, "st0ry1").Return(true, nil).Once()
		f.story.On("GetByShortURL", mock.Anything, "st0ry1").Return(story, nil).Once()

		_, err := f.svc.Create(ctx, domain.CommentSubmission{StoryShortURL: "st0ry1", AuthorID: 8, Text: ""})
		assert.True(t, domain.IsValidationError(err))
		f.worker.AssertNotCalled(t, "Schedule", mock.Anything)
	})
}

func TestToggleVote(t *testing.T) {
	f := newFixture(t)
	f.comment.On("GetByShortURL", mock.Anything, "abc123").Return(domain.Comment{ID: 11}, nil).Twice()
	f.comment.On("ToggleVote", mock.Anything, int64(2), int64(11)).Return(true, nil).Once()
	f.comment.On("ToggleVote", mock.Anything, int64(2), int64(11)).Return(false, nil).Once()

	voted, err := f.svc.ToggleVote(context.Background(), "abc123", 2)
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = f.svc.ToggleVote(context.Background(), "abc123", 2)
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("author", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("GetByShortURL", mock.Anything, "abc123").Return(domain.Comment{ID: 11, StoryID: 5, UserID: 2}, nil).Once()
		f.comment.On("Delete", mock.Anything, int64(11)).Return(nil).Once()
		f.worker.On("Schedule", int64(5)).Once()

		assert.NoError(t, f.svc.Delete(ctx, "abc123", 2))
	})

	t.Run("someone else", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("GetByShortURL", mock.Anything, "abc123").Return(domain.Comment{ID: 11, StoryID: 5, UserID: 2}, nil).Once()

		assert.ErrorIs(t, f.svc.Delete(ctx, "abc123", 3), domain.ErrForbidden)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.comment.On("GetByShortURL", mock.Anything, "abc123").Return(domain.Comment{}, domain.ErrNotFound).Once()

		assert.ErrorIs(t, f.svc.Delete(ctx, "abc123", 3), domain.ErrNotFound)
	})
}

func TestFetchRecent(t *testing.T) {
	f := newFixture(t)
	page := make([]domain.Comment, repository.DefaultPageNum)
	for i := range page {
		page[i] = row(int64(i+1), 0, 1)
		page[i].CommentedAt = commentedAt.Add(-time.Duration(i) * time.Minute)
	}
	f.comment.On("FetchRecent", mock.Anything, "", int64(repository.DefaultPageNum)).Return(page, nil).Once()
	f.comment.On("FetchRecent", mock.Anything, mock.AnythingOfType("string"), int64(repository.DefaultPageNum)).Return(page[:2], nil).Once()

	res, next, err := f.svc.FetchRecent(context.Background(), "", 100)
	require.NoError(t, err)
	assert.Len(t, res, repository.DefaultPageNum)
	assert.Equal(t, repository.EncodeCursor(page[len(page)-1].CommentedAt), next)

	_, next, err = f.svc.FetchRecent(context.Background(), next, 0)
	require.NoError(t, err)
	assert.Empty(t, next)
}
