package workers

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-forum/domain"
)

const (
	hotnessBatchSize = 100
	hotnessQueueSize = 1024
	flushTimeout     = 5 * time.Second
)

type storyHotnessWorker struct {
	StoryRepo domain.StoryRepository
	ch        chan int64
	interval  time.Duration
}

var _ domain.StoryHotnessWorker = (*storyHotnessWorker)(nil)

func NewStoryHotnessWorker(sr domain.StoryRepository) *storyHotnessWorker {
	return &storyHotnessWorker{
		StoryRepo: sr,
		ch:        make(chan int64, hotnessQueueSize),
		interval:  time.Second,
	}
}

// Schedule never blocks; a full queue drops the task and the next vote or comment reschedules it.
func (s *storyHotnessWorker) Schedule(storyID int64) {
	if storyID <= 0 {
		return
	}
	select {
	case s.ch <- storyID:
	default:
		logrus.Warnf("StoryHotnessWorker's channel is full, story %d dropped", storyID)
	}
}

func (s *storyHotnessWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	batch := make(map[int64]struct{}, hotnessBatchSize)
	for {
		select {
		case id := <-s.ch:
			batch[id] = struct{}{}
			if len(batch) == hotnessBatchSize {
				s.flush(ctx, batch)
				batch = make(map[int64]struct{}, hotnessBatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(ctx, batch)
				batch = make(map[int64]struct{}, hotnessBatchSize)
			}
		case <-ctx.Done():
			logrus.Info("shutting down StoryHotnessWorker, flushing remaining tasks...")
		drain:
			for {
				select {
				case id := <-s.ch:
					batch[id] = struct{}{}
				default:
					break drain
				}
			}
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			s.flush(flushCtx, batch)
			cancel()
			return
		}
	}
}

func (s *storyHotnessWorker) flush(ctx context.Context, batch map[int64]struct{}) {
	if len(batch) == 0 {
		return
	}
	ids := make([]int64, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	if err := s.StoryRepo.RefreshAggregates(ctx, ids); err != nil {
		logrus.WithField("stories", len(ids)).Errorf("failed to refresh story aggregates: %v", err)
	}
}
