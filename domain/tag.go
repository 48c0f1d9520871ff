package domain

import "context"

// Tag labels stories.
type Tag struct {
	ID          int64
	Tag         string
	Description string
}

type TagRepository interface {
	Fetch(ctx context.Context) ([]Tag, error)
	// GetByNames returns the tags that exist; unknown names are simply absent.
	GetByNames(ctx context.Context, names []string) ([]Tag, error)
	GetByName(ctx context.Context, name string) (Tag, error)
	FetchForStory(ctx context.Context, storyID int64) ([]Tag, error)
}

type TagUsecase interface {
	Fetch(ctx context.Context) ([]Tag, error)
}
