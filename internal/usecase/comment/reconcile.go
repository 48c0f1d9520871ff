package comment

import (
	"context"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// UnreadIDs collects the comments that still need a read marker.
// With sameUser set, only nodes whose read flag was fetched and is false are taken;
// an unfetched flag never counts as unread.
func UnreadIDs(roots []*domain.Comment, sameUser bool) []int64 {
	ids := make([]int64, 0)
	walk(roots, func(c *domain.Comment) {
		if !sameUser {
			ids = append(ids, c.ID)
			return
		}
		if read, ok := c.UserRead.Get(); ok && !read {
			ids = append(ids, c.ID)
		}
	})
	return ids
}

// MarkTreeRead writes read markers for viewerID in one bulk write, or not at all when nothing is unread.
func (s *Service) MarkTreeRead(ctx context.Context, viewerID int64, roots []*domain.Comment, sameUser bool) error {
	ids := UnreadIDs(roots, sameUser)
	if len(ids) == 0 {
		return nil
	}
	return s.commentRepo.MarkRead(ctx, viewerID, ids)
}
