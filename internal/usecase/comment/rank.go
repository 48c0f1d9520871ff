package comment

import (
	"cmp"
	"slices"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/ranking"
)

// Rank returns the sort key of a comment. The score aggregate must have been fetched.
func Rank(c *domain.Comment) (float64, error) {
	score, ok := c.Score.Get()
	if !ok {
		return 0, domain.ErrScoreNotFetched
	}
	return ranking.CommentRank(score, c.CommentedAt), nil
}

type rankedComment struct {
	comment *domain.Comment
	rank    float64
}

// SortTree orders every sibling list by ascending rank, children first.
// Nothing is reordered if any node lacks its score.
func SortTree(roots []*domain.Comment) error {
	var missing error
	walk(roots, func(c *domain.Comment) {
		if missing == nil && !c.Score.Present() {
			missing = domain.ErrScoreNotFetched
		}
	})
	if missing != nil {
		return missing
	}

	sortLevel(roots)
	return nil
}

func sortLevel(level []*domain.Comment) {
	for _, c := range level {
		sortLevel(c.Children)
	}
	if len(level) < 2 {
		return
	}

	keyed := make([]rankedComment, len(level))
	for i, c := range level {
		rank, _ := Rank(c)
		keyed[i] = rankedComment{comment: c, rank: rank}
	}
	slices.SortStableFunc(keyed, func(a, b rankedComment) int {
		return cmp.Compare(a.rank, b.rank)
	})
	for i := range keyed {
		level[i] = keyed[i].comment
	}
}
