package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/repository/sqlstore/model"
)

type tagRepository struct {
	DB *gorm.DB
}

var _ domain.TagRepository = (*tagRepository)(nil)

func NewTagRepository(db *gorm.DB) *tagRepository {
	return &tagRepository{DB: db}
}

func toDomainTags(tags []model.Tag) []domain.Tag {
	res := make([]domain.Tag, len(tags))
	for i := range tags {
		res[i] = tags[i].ToDomain()
	}
	return res
}

func (r *tagRepository) Fetch(ctx context.Context) ([]domain.Tag, error) {
	var tags []model.Tag
	if err := r.DB.WithContext(ctx).Order("tag").Find(&tags).Error; err != nil {
		return nil, err
	}
	return toDomainTags(tags), nil
}

func (r *tagRepository) GetByNames(ctx context.Context, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return []domain.Tag{}, nil
	}
	var tags []model.Tag
	if err := r.DB.WithContext(ctx).Where("tag IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return toDomainTags(tags), nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	var tag model.Tag
	if err := r.DB.WithContext(ctx).First(&tag, "tag = ?", name).Error; err != nil {
		return domain.Tag{}, translate(err)
	}
	return tag.ToDomain(), nil
}

func (r *tagRepository) FetchForStory(ctx context.Context, storyID int64) ([]domain.Tag, error) {
	var tags []model.Tag
	err := r.DB.WithContext(ctx).
		Joins("JOIN taggings tg ON tg.tag_id = tags.id").
		Where("tg.story_id = ?", storyID).
		Order("tags.tag").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return toDomainTags(tags), nil
}
