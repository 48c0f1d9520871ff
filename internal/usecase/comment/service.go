package comment

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/repository"
	"github.com/Guyuepp/go-clean-forum/internal/shortid"
)

// Renderer turns comment markdown into sanitized HTML.
type Renderer interface {
	Render(source string) string
}

type Service struct {
	commentRepo domain.CommentRepository
	storyRepo   domain.StoryRepository
	bloomRepo   domain.BloomRepository
	hotness     domain.StoryHotnessWorker
	renderer    Renderer
	validate    *validator.Validate
	newShortURL func() (string, error)
}

var _ domain.CommentUsecase = (*Service)(nil)

// NewService will create a new comment service object
func NewService(c domain.CommentRepository, s domain.StoryRepository, b domain.BloomRepository, w domain.StoryHotnessWorker, r Renderer) *Service {
	return &Service{
		commentRepo: c,
		storyRepo:   s,
		bloomRepo:   b,
		hotness:     w,
		renderer:    r,
		validate:    validator.New(),
		newShortURL: shortid.New,
	}
}

func (s *Service) mustExist(ctx context.Context, storyShortURL string) error {
	exists, err := s.bloomRepo.Exists(ctx, storyShortURL)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says story %s does not exist", storyShortURL)
		return domain.ErrNotFound
	}
	if err != nil {
		logrus.Warnf("bloom filter check failed: %v", err)
	}
	return nil
}

// FetchTree loads, links and ranks the comments of a story.
// For a signed-in viewer the unread comments are marked read afterwards;
// the returned flags still show what was unread before this call.
func (s *Service) FetchTree(ctx context.Context, storyID int64, viewerID int64) ([]*domain.Comment, error) {
	fields := domain.CommentFields{
		Score:     true,
		Username:  true,
		ViewerID:  viewerID,
		ReadState: viewerID > 0,
		VoteState: viewerID > 0,
	}

	rows, err := s.commentRepo.FetchForStory(ctx, storyID, fields)
	if err != nil {
		return nil, err
	}

	roots := AssembleTree(rows)
	if err := SortTree(roots); err != nil {
		return nil, err
	}

	if fields.HasViewer() {
		if err := s.MarkTreeRead(ctx, viewerID, roots, fields.ReadState); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

func (s *Service) FetchRecent(ctx context.Context, cursor string, num int64) ([]domain.Comment, string, error) {
	repository.PageVerify(&num)
	res, err := s.commentRepo.FetchRecent(ctx, cursor, num)
	if err != nil {
		return nil, "", err
	}
	if int64(len(res)) < num {
		return res, "", nil
	}
	return res, repository.EncodeCursor(res[len(res)-1].CommentedAt), nil
}

func (s *Service) GetByShortURL(ctx context.Context, shortURL string) (domain.Comment, error) {
	return s.commentRepo.GetByShortURL(ctx, shortURL)
}

// ToggleVote reports whether the user has a vote on the comment afterwards.
func (s *Service) ToggleVote(ctx context.Context, shortURL string, userID int64) (bool, error) {
	c, err := s.commentRepo.GetByShortURL(ctx, shortURL)
	if err != nil {
		return false, err
	}
	return s.commentRepo.ToggleVote(ctx, userID, c.ID)
}

// Delete removes a comment. Only its author may do so.
func (s *Service) Delete(ctx context.Context, shortURL string, userID int64) error {
	c, err := s.commentRepo.GetByShortURL(ctx, shortURL)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.hotness.Schedule(c.StoryID)
	return nil
}
