package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.UnixMilli(0).UTC()

func TestCommentRank(t *testing.T) {
	t.Run("zero score at epoch", func(t *testing.T) {
		assert.InDelta(t, 0.0, CommentRank(0, epoch), 1e-9)
	})

	t.Run("nine votes at epoch", func(t *testing.T) {
		assert.InDelta(t, -1.0, CommentRank(9, epoch), 1e-6)
	})

	t.Run("negative score clamps to zero votes", func(t *testing.T) {
		assert.Equal(t, CommentRank(-1, epoch), CommentRank(-40, epoch))
		assert.InDelta(t, 0.0, CommentRank(-5, epoch), 1e-9)
	})

	t.Run("one day after epoch", func(t *testing.T) {
		assert.InDelta(t, -1.0, CommentRank(0, epoch.Add(24*time.Hour)), 1e-9)
	})

	t.Run("deterministic", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		assert.Equal(t, CommentRank(17, at), CommentRank(17, at))
	})

	t.Run("more votes rank first at equal time", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		assert.Less(t, CommentRank(5, at), CommentRank(2, at))
		assert.Less(t, CommentRank(2, at), CommentRank(0, at))
		assert.Less(t, CommentRank(99, at), CommentRank(9, at))
	})

	t.Run("later timestamps rank first at equal score", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		assert.Less(t, CommentRank(3, at.Add(time.Hour)), CommentRank(3, at))
	})

	t.Run("truncated to seven decimals", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 30, 17, 0, time.UTC)
		r := CommentRank(4, at) * precision
		assert.InDelta(t, math.Round(r), r, 1e-3)
	})
}

func TestStoryHotness(t *testing.T) {
	assert.InDelta(t, 0.0, StoryHotness(1, time.Unix(0, 0)), 1e-9)
	assert.InDelta(t, 0.0, StoryHotness(0, time.Unix(0, 0)), 1e-9)
	assert.InDelta(t, -1.0, StoryHotness(10, time.Unix(0, 0)), 1e-6)
	assert.InDelta(t, -2.0, StoryHotness(1, time.Unix(90000, 0)), 1e-9)

	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Less(t, StoryHotness(20, at), StoryHotness(2, at))
	assert.Less(t, StoryHotness(2, at.Add(12*time.Hour)), StoryHotness(2, at))
}
