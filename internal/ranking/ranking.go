// Package ranking holds the sort keys used for comments and stories.
// Lower values sort first.
package ranking

import (
	"math"
	"time"
)

const (
	msPerDay = 86_400_000
	// storyDecaySeconds is how long a story needs to age to lose one order of magnitude of votes.
	storyDecaySeconds = 45000
	precision         = 1e7
)

// CommentRank combines the vote count with the absolute post time in days since epoch.
// The result is truncated to 7 decimal places.
func CommentRank(score int64, commentedAt time.Time) float64 {
	votes := math.Max(float64(score)+1, 1)
	days := float64(commentedAt.UnixMilli()) / msPerDay
	return truncate(math.Log10(votes) + days)
}

// StoryHotness is the cached ordering key of the hottest listing.
func StoryHotness(score int64, createdAt time.Time) float64 {
	votes := math.Max(float64(score), 1)
	age := float64(createdAt.Unix()) / storyDecaySeconds
	return truncate(math.Log10(votes) + age)
}

func truncate(v float64) float64 {
	return -math.Floor(v*precision) / precision
}
