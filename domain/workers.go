package domain

import "context"

// StoryHotnessWorker recomputes cached story aggregates in the background.
type StoryHotnessWorker interface {
	Start(ctx context.Context)

	// Schedule queues a story for a refresh; duplicates within one batch collapse.
	Schedule(storyID int64)
}
