package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/ranking"
	"github.com/Guyuepp/go-clean-forum/internal/repository"
	"github.com/Guyuepp/go-clean-forum/internal/repository/sqlstore/model"
)

type storyRepository struct {
	DB *gorm.DB
}

// sqlstore层只负责数据库操作
var _ domain.StoryRepository = (*storyRepository)(nil)

// NewStoryRepository 创建数据库操作层
func NewStoryRepository(db *gorm.DB) *storyRepository {
	return &storyRepository{db}
}

func (r *storyRepository) selectStories(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("stories AS s").
		Select("s.*, u.username AS username").
		Joins("JOIN users u ON u.id = s.user_id")
}

func (r *storyRepository) Fetch(ctx context.Context, q domain.StoryQuery, tagID int64) ([]domain.Story, error) {
	db := r.selectStories(ctx)
	if tagID > 0 {
		db = db.Where("EXISTS (SELECT 1 FROM taggings tg WHERE tg.story_id = s.id AND tg.tag_id = ?)", tagID)
	}

	switch q.Order {
	case domain.StoryOrderNewest:
		if q.Cursor != "" {
			decodedCursor, err := repository.DecodeCursor(q.Cursor)
			if err != nil {
				return nil, domain.ErrBadParamInput
			}
			db = db.Where("s.created_at < ?", decodedCursor)
		}
		db = db.Order("s.created_at DESC")
	default:
		db = db.Order("s.hotness ASC").Order("s.id DESC").Offset(int((q.Page - 1) * q.Num))
	}

	var rows []model.StoryRow
	if err := db.Limit(int(q.Num)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	res := make([]domain.Story, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res, nil
}

func (r *storyRepository) GetByShortURL(ctx context.Context, shortURL string) (domain.Story, error) {
	var rows []model.StoryRow
	err := r.selectStories(ctx).
		Where("s.short_url = ?", shortURL).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return domain.Story{}, err
	}
	if len(rows) == 0 {
		return domain.Story{}, domain.ErrNotFound
	}
	return rows[0].ToDomain(), nil
}

func (r *storyRepository) Store(ctx context.Context, s *domain.Story) error {
	storyModel := model.NewStoryFromDomain(s)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(storyModel).Error; err != nil {
			return err
		}
		if len(s.Tags) > 0 {
			taggings := make([]model.Tagging, len(s.Tags))
			for i, t := range s.Tags {
				taggings[i] = model.Tagging{StoryID: storyModel.ID, TagID: t.ID}
			}
			if err := tx.Omit(clause.Associations).Create(&taggings).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(&model.StoryVote{UserID: s.User.ID, StoryID: storyModel.ID}).Error
	})
	if err != nil {
		return translate(err)
	}

	s.ID = storyModel.ID
	s.CreatedAt = storyModel.CreatedAt
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Story{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *storyRepository) ToggleVote(ctx context.Context, userID int64, storyID int64) (voted bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var story model.Story
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&story, "id = ?", storyID).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND story_id = ?", userID, storyID).Delete(&model.StoryVote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			voted = false
			return nil
		}

		voted = true
		return tx.Omit(clause.Associations).Create(&model.StoryVote{UserID: userID, StoryID: storyID}).Error
	})
	return voted, translate(err)
}

func (r *storyRepository) HasVoted(ctx context.Context, userID int64, storyID int64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.StoryVote{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error
	return count > 0, err
}

// RefreshAggregates recounts from the vote and comment tables rather than applying deltas.
func (r *storyRepository) RefreshAggregates(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var createdAt time.Time
			err := tx.Model(&model.Story{}).
				Select("created_at").
				Where("id = ?", id).
				Scan(&createdAt).Error
			if err != nil {
				return err
			}
			if createdAt.IsZero() {
				// deleted since it was scheduled
				continue
			}

			var score, comments int64
			if err := tx.Model(&model.StoryVote{}).Where("story_id = ?", id).Count(&score).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Comment{}).Where("story_id = ?", id).Count(&comments).Error; err != nil {
				return err
			}

			err = tx.Model(&model.Story{}).
				Where("id = ?", id).
				UpdateColumns(map[string]any{
					"score":          score,
					"comments_count": comments,
					"hotness":        ranking.StoryHotness(score, createdAt),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *storyRepository) FetchShortURLs(ctx context.Context, afterID int64, limit int64) (ids []int64, shortURLs []string, err error) {
	var rows []struct {
		ID       int64
		ShortURL string
	}
	err = r.DB.WithContext(ctx).
		Model(&model.Story{}).
		Select("id, short_url").
		Where("id > ?", afterID).
		Order("id").
		Limit(int(limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	ids = make([]int64, len(rows))
	shortURLs = make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		shortURLs[i] = row.ShortURL
	}
	return ids, shortURLs, nil
}
