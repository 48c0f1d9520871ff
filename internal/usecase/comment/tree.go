package comment

import (
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// AssembleTree links flat rows into parent/children trees and returns the roots in input order.
// A row whose parent is missing is dropped, and so is everything below it.
func AssembleTree(rows []domain.Comment) []*domain.Comment {
	nodes := make([]domain.Comment, len(rows))
	copy(nodes, rows)

	byID := make(map[int64]*domain.Comment, len(nodes))
	for i := range nodes {
		nodes[i].Children = []*domain.Comment{}
		byID[nodes[i].ID] = &nodes[i]
	}

	roots := make([]*domain.Comment, 0)
	for i := range nodes {
		c := &nodes[i]
		if c.IsRoot() {
			roots = append(roots, c)
			continue
		}

		parent, ok := byID[*c.ParentID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"comment_id": c.ID,
				"parent_id":  *c.ParentID,
				"story_id":   c.StoryID,
			}).Warn("dropping orphaned comment")
			continue
		}
		parent.Children = append(parent.Children, c)
	}

	return roots
}

// walk visits every node reachable from roots.
func walk(roots []*domain.Comment, fn func(c *domain.Comment)) {
	stack := make([]*domain.Comment, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(c)
		stack = append(stack, c.Children...)
	}
}
