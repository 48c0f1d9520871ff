package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-forum/domain"
)

const (
	msgCommentEmpty   = "comment cannot be empty"
	msgParentMismatch = "parent comment does not belong to this story"

	maxShortURLAttempts = 3
)

var (
	msgCommentTooLong = fmt.Sprintf("comment is too long (maximum is %d characters)", domain.CommentMaxLength)
	commentMaxTag     = fmt.Sprintf("max=%d", domain.CommentMaxLength)
)

// validateComment returns every violated rule.
func (s *Service) validateComment(in domain.NewComment) []string {
	var msgs []string

	if err := s.validate.Var(strings.TrimSpace(in.RawText), "required"); err != nil {
		msgs = append(msgs, msgCommentEmpty)
	}
	if err := s.validate.Var(in.RawText, commentMaxTag); err != nil {
		msgs = append(msgs, msgCommentTooLong)
	}
	if in.Parent != nil && in.Parent.StoryID != in.StoryID {
		msgs = append(msgs, msgParentMismatch)
	}

	return msgs
}

// CreateComment validates and stores a comment. The author's vote and read marker are written with it.
func (s *Service) CreateComment(ctx context.Context, in domain.NewComment) (*domain.Comment, error) {
	if err := domain.NewValidationError(s.validateComment(in)); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		StoryID:     in.StoryID,
		UserID:      in.AuthorID,
		Comment:     in.RawText,
		CommentHTML: s.renderer.Render(in.RawText),
	}
	if in.Parent != nil {
		parentID := in.Parent.ID
		c.ParentID = &parentID
	}

	var err error
	for attempt := 1; attempt <= maxShortURLAttempts; attempt++ {
		c.ShortURL, err = s.newShortURL()
		if err != nil {
			return nil, err
		}

		err = s.commentRepo.Store(ctx, c)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
		logrus.Warnf("short url %s already taken (attempt %d/%d)", c.ShortURL, attempt, maxShortURLAttempts)
	}
	if err != nil {
		return nil, err
	}

	c.Children = []*domain.Comment{}
	c.Score = domain.Some[int64](1)
	c.UserVoted = domain.Some(true)
	c.UserRead = domain.Some(true)
	return c, nil
}

// Create resolves the public short URLs of a submission and creates the comment.
func (s *Service) Create(ctx context.Context, in domain.CommentSubmission) (*domain.Comment, error) {
	if err := s.mustExist(ctx, in.StoryShortURL); err != nil {
		return nil, err
	}

	story, err := s.storyRepo.GetByShortURL(ctx, in.StoryShortURL)
	if err != nil {
		return nil, err
	}

	var parent *domain.Comment
	if in.ParentShortURL != "" {
		p, err := s.commentRepo.GetByShortURL(ctx, in.ParentShortURL)
		if err != nil {
			return nil, err
		}
		parent = &p
	}

	c, err := s.CreateComment(ctx, domain.NewComment{
		StoryID:  story.ID,
		Parent:   parent,
		AuthorID: in.AuthorID,
		RawText:  in.Text,
	})
	if err != nil {
		return nil, err
	}

	c.StoryURL = domain.Some(story.ShortURL)
	s.hotness.Schedule(story.ID)
	return c, nil
}
