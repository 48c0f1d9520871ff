package sqlstore

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/repository"
	"github.com/Guyuepp/go-clean-forum/internal/repository/sqlstore/model"
)

const commentColumns = "c.id, c.story_id, c.user_id, c.parent_id, c.short_url, c.comment, c.comment_html, c.commented_at"

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// selectComments builds the base query with one optional column per requested field.
func (r *commentRepository) selectComments(ctx context.Context, fields domain.CommentFields) *gorm.DB {
	cols := []string{commentColumns}
	var args []any
	q := r.DB.WithContext(ctx).Table("comments AS c")

	if fields.Score {
		cols = append(cols, "(SELECT COUNT(*) FROM comment_votes cv WHERE cv.comment_id = c.id) AS score")
	}
	if fields.Username {
		cols = append(cols, "u.username AS username")
		q = q.Joins("JOIN users u ON u.id = c.user_id")
	}
	if fields.StoryURL {
		cols = append(cols, "s.short_url AS story_url")
		q = q.Joins("JOIN stories s ON s.id = c.story_id")
	}
	if fields.HasViewer() && fields.ReadState {
		cols = append(cols, "EXISTS (SELECT 1 FROM read_comments rc WHERE rc.comment_id = c.id AND rc.user_id = ?) AS user_read")
		args = append(args, fields.ViewerID)
	}
	if fields.HasViewer() && fields.VoteState {
		cols = append(cols, "EXISTS (SELECT 1 FROM comment_votes uv WHERE uv.comment_id = c.id AND uv.user_id = ?) AS user_voted")
		args = append(args, fields.ViewerID)
	}
	return q.Select(strings.Join(cols, ", "), args...)
}

func toDomainComments(rows []model.CommentRow) []domain.Comment {
	res := make([]domain.Comment, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res
}

func (r *commentRepository) FetchForStory(ctx context.Context, storyID int64, fields domain.CommentFields) ([]domain.Comment, error) {
	var rows []model.CommentRow
	err := r.selectComments(ctx, fields).
		Where("c.story_id = ?", storyID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainComments(rows), nil
}

func (r *commentRepository) FetchRecent(ctx context.Context, cursor string, num int64) ([]domain.Comment, error) {
	q := r.selectComments(ctx, domain.CommentFields{Score: true, Username: true, StoryURL: true})
	if cursor != "" {
		decodedCursor, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		q = q.Where("c.commented_at < ?", decodedCursor)
	}

	var rows []model.CommentRow
	err := q.Order("c.commented_at DESC").
		Limit(int(num)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainComments(rows), nil
}

func (r *commentRepository) GetByShortURL(ctx context.Context, shortURL string) (domain.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).First(&comment, "short_url = ?", shortURL).Error
	if err != nil {
		return domain.Comment{}, translate(err)
	}
	return comment.ToDomain(), nil
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(c)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(commentModel).Error; err != nil {
			return err
		}
		vote := &model.CommentVote{UserID: c.UserID, CommentID: commentModel.ID}
		if err := tx.Omit(clause.Associations).Create(vote).Error; err != nil {
			return err
		}
		marker := &model.ReadComment{UserID: c.UserID, CommentID: commentModel.ID}
		return tx.Omit(clause.Associations).Create(marker).Error
	})
	if err != nil {
		return translate(err)
	}

	c.ID = commentModel.ID
	c.CommentedAt = commentModel.CommentedAt
	return nil
}

func (r *commentRepository) MarkRead(ctx context.Context, userID int64, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	markers := make([]model.ReadComment, len(commentIDs))
	for i, id := range commentIDs {
		markers[i] = model.ReadComment{UserID: userID, CommentID: id}
	}
	return r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&markers).Error
}

func (r *commentRepository) ToggleVote(ctx context.Context, userID int64, commentID int64) (voted bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&comment, "id = ?", commentID).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&model.CommentVote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			voted = false
			return nil
		}

		voted = true
		return tx.Omit(clause.Associations).Create(&model.CommentVote{UserID: userID, CommentID: commentID}).Error
	})
	return voted, translate(err)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
