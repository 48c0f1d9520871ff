package story

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/ranking"
	"github.com/Guyuepp/go-clean-forum/internal/repository"
	"github.com/Guyuepp/go-clean-forum/internal/shortid"
)

const (
	bloomInitBatch      = 1000
	maxShortURLAttempts = 3
)

// Renderer turns story descriptions into sanitized HTML.
type Renderer interface {
	Render(source string) string
}

type Service struct {
	storyRepo   domain.StoryRepository
	storyCache  domain.StoryCache
	tagRepo     domain.TagRepository
	comments    domain.CommentUsecase
	bloomRepo   domain.BloomRepository
	hotness     domain.StoryHotnessWorker
	renderer    Renderer
	validate    *validator.Validate
	newShortURL func() (string, error)
}

var _ domain.StoryUsecase = (*Service)(nil)

// NewService will create a new story service object
func NewService(s domain.StoryRepository, sc domain.StoryCache, t domain.TagRepository, c domain.CommentUsecase,
	b domain.BloomRepository, w domain.StoryHotnessWorker, r Renderer) *Service {
	return &Service{
		storyRepo:   s,
		storyCache:  sc,
		tagRepo:     t,
		comments:    c,
		bloomRepo:   b,
		hotness:     w,
		renderer:    r,
		validate:    validator.New(),
		newShortURL: shortid.New,
	}
}

func (s *Service) mustExist(ctx context.Context, shortURL string) error {
	exists, err := s.bloomRepo.Exists(ctx, shortURL)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says story %s does not exist", shortURL)
		return domain.ErrNotFound
	}
	return nil
}

/*
* fillTags loads the tags of every story concurrently.
* Each goroutine sends its result through the channel; the map is only touched here.
 */
func (s *Service) fillTags(ctx context.Context, data []domain.Story) ([]domain.Story, error) {
	type storyTags struct {
		storyID int64
		tags    []domain.Tag
	}

	g, ctx := errgroup.WithContext(ctx)
	chanTags := make(chan storyTags)
	for i := range data {
		storyID := data[i].ID
		g.Go(func() error {
			res, err := s.tagRepo.FetchForStory(ctx, storyID)
			if err != nil {
				return err
			}
			select {
			case chanTags <- storyTags{storyID: storyID, tags: res}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(chanTags)
		if err := g.Wait(); err != nil {
			logrus.Error(err)
		}
	}()

	mapTags := make(map[int64][]domain.Tag, len(data))
	for st := range chanTags {
		mapTags[st.storyID] = st.tags
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range data {
		if tags, ok := mapTags[data[i].ID]; ok {
			data[i].Tags = tags
		} else {
			data[i].Tags = []domain.Tag{}
		}
	}
	return data, nil
}

// Fetch returns a story listing and the token of the next page.
// Hottest pages by number, newest pages by a creation time cursor.
func (s *Service) Fetch(ctx context.Context, q domain.StoryQuery) ([]domain.Story, string, error) {
	if q.Order == "" {
		q.Order = domain.StoryOrderHottest
	}
	if q.Order != domain.StoryOrderHottest && q.Order != domain.StoryOrderNewest {
		return nil, "", domain.ErrBadParamInput
	}
	if q.Page < 1 {
		q.Page = 1
	}
	repository.PageVerify(&q.Num)

	var tagID int64
	if q.Tag != "" {
		tag, err := s.tagRepo.GetByName(ctx, q.Tag)
		if err != nil {
			return nil, "", err
		}
		tagID = tag.ID
	}

	res, err := s.storyRepo.Fetch(ctx, q, tagID)
	if err != nil {
		return nil, "", err
	}

	res, err = s.fillTags(ctx, res)
	if err != nil {
		return nil, "", err
	}

	if int64(len(res)) < q.Num {
		return res, "", nil
	}
	if q.Order == domain.StoryOrderNewest {
		return res, repository.EncodeCursor(res[len(res)-1].CreatedAt), nil
	}
	return res, strconv.FormatInt(q.Page+1, 10), nil
}

// GetByShortURL loads the story page. Tags and the comment tree are fetched concurrently.
func (s *Service) GetByShortURL(ctx context.Context, shortURL string, viewerID int64) (domain.StoryDetail, error) {
	if err := s.mustExist(ctx, shortURL); err != nil {
		return domain.StoryDetail{}, err
	}

	st, err := s.storyRepo.GetByShortURL(ctx, shortURL)
	if err != nil {
		return domain.StoryDetail{}, err
	}

	var (
		tags     []domain.Tag
		comments []*domain.Comment
		voted    bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tags, err = s.tagRepo.FetchForStory(gctx, st.ID)
		return
	})
	g.Go(func() (err error) {
		comments, err = s.comments.FetchTree(gctx, st.ID, viewerID)
		return
	})
	if viewerID > 0 {
		g.Go(func() (err error) {
			voted, err = s.storyRepo.HasVoted(gctx, viewerID, st.ID)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return domain.StoryDetail{}, err
	}

	st.Tags = tags
	if viewerID > 0 {
		st.UserVoted = domain.Some(voted)
	}
	return domain.StoryDetail{Story: st, Comments: comments}, nil
}

type storyInput struct {
	Title string   `validate:"min=3,max=150"`
	URL   string   `validate:"omitempty,http_url"`
	Tags  []string `validate:"min=1,max=5,dive,required"`
}

var storyMessages = map[string]string{
	"Title": fmt.Sprintf("title must be between %d and %d characters", domain.StoryTitleMinLength, domain.StoryTitleMaxLength),
	"URL":   "url must be a valid http or https address",
	"Tags":  fmt.Sprintf("stories need between 1 and %d tags", domain.StoryMaxTags),
}

func (s *Service) validateStory(ctx context.Context, in *domain.NewStory) ([]domain.Tag, []string, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)

	var msgs []string
	err := s.validate.Struct(storyInput{Title: in.Title, URL: in.URL, Tags: in.Tags})
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		seen := make(map[string]bool)
		for _, fe := range verrs {
			field := fe.StructField()
			if strings.HasPrefix(field, "Tags[") {
				field = "Tags"
			}
			if !seen[field] {
				seen[field] = true
				msgs = append(msgs, storyMessages[field])
			}
		}
	} else if err != nil {
		return nil, nil, err
	}

	if in.URL == "" && strings.TrimSpace(in.Description) == "" {
		msgs = append(msgs, "url or description is required")
	}

	var tags []domain.Tag
	if len(in.Tags) > 0 {
		tags, err = s.tagRepo.GetByNames(ctx, in.Tags)
		if err != nil {
			return nil, nil, err
		}
		known := make(map[string]bool, len(tags))
		for _, t := range tags {
			known[t.Tag] = true
		}
		for _, name := range in.Tags {
			if name != "" && !known[name] {
				msgs = append(msgs, fmt.Sprintf("unknown tag: %s", name))
			}
		}
	}
	return tags, msgs, nil
}

// Submit stores a new story with the submitter's vote already counted.
func (s *Service) Submit(ctx context.Context, in domain.NewStory) (*domain.Story, error) {
	tags, msgs, err := s.validateStory(ctx, &in)
	if err != nil {
		return nil, err
	}
	if err := domain.NewValidationError(msgs); err != nil {
		return nil, err
	}

	now := time.Now()
	st := &domain.Story{
		Title:           in.Title,
		URL:             in.URL,
		Description:     in.Description,
		DescriptionHTML: s.renderer.Render(in.Description),
		User:            domain.User{ID: in.UserID},
		Tags:            tags,
		Score:           1,
		Hotness:         ranking.StoryHotness(1, now),
		CreatedAt:       now,
	}

	for attempt := 1; attempt <= maxShortURLAttempts; attempt++ {
		st.ShortURL, err = s.newShortURL()
		if err != nil {
			return nil, err
		}
		err = s.storyRepo.Store(ctx, st)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
		logrus.Warnf("short url %s already taken (attempt %d/%d)", st.ShortURL, attempt, maxShortURLAttempts)
	}
	if err != nil {
		return nil, err
	}

	if err := s.bloomRepo.Add(ctx, st.ShortURL); err != nil {
		logrus.Errorf("failed to add story %s to bloom filter: %v", st.ShortURL, err)
	}
	st.UserVoted = domain.Some(true)
	s.hotness.Schedule(st.ID)
	return st, nil
}

// Delete removes a story and everything hanging off it. Only its submitter may do so.
func (s *Service) Delete(ctx context.Context, shortURL string, userID int64) error {
	st, err := s.storyRepo.GetByShortURL(ctx, shortURL)
	if err != nil {
		return err
	}
	if st.User.ID != userID {
		return domain.ErrForbidden
	}
	if err := s.storyRepo.Delete(ctx, st.ID); err != nil {
		return err
	}
	if err := s.storyCache.DeleteStory(ctx, shortURL); err != nil {
		logrus.Warnf("failed to drop cached story %s: %v", shortURL, err)
	}
	return nil
}

func (s *Service) ToggleVote(ctx context.Context, shortURL string, userID int64) (bool, error) {
	if err := s.mustExist(ctx, shortURL); err != nil {
		return false, err
	}
	st, err := s.storyRepo.GetByShortURL(ctx, shortURL)
	if err != nil {
		return false, err
	}

	voted, err := s.storyRepo.ToggleVote(ctx, userID, st.ID)
	if err != nil {
		return false, err
	}

	if err := s.storyCache.DeleteStory(ctx, shortURL); err != nil {
		logrus.Warnf("failed to drop cached story %s: %v", shortURL, err)
	}
	s.hotness.Schedule(st.ID)
	return voted, nil
}

// InitBloomFilter loads every story short URL into the bloom filter.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var (
		afterID int64
		total   int
	)
	for {
		ids, urls, err := s.storyRepo.FetchShortURLs(ctx, afterID, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			break
		}
		if err := s.bloomRepo.BulkAdd(ctx, urls); err != nil {
			return err
		}
		total += len(urls)
		afterID = ids[len(ids)-1]
		if len(urls) < bloomInitBatch {
			break
		}
	}
	logrus.Infof("bloom filter loaded with %d stories", total)
	return nil
}
