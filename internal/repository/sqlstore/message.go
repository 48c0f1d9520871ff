package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/repository/sqlstore/model"
)

type messageRepository struct {
	DB *gorm.DB
}

var _ domain.MessageRepository = (*messageRepository)(nil)

func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{DB: db}
}

func (r *messageRepository) selectMessages(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("messages AS m").
		Select("m.*, a.username AS author_username, rc.username AS recipient_username").
		Joins("JOIN users a ON a.id = m.author_user_id").
		Joins("JOIN users rc ON rc.id = m.recipient_user_id")
}

func toDomainMessages(rows []model.MessageRow) []domain.Message {
	res := make([]domain.Message, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res
}

func (r *messageRepository) Store(ctx context.Context, m *domain.Message) error {
	msgModel := model.NewMessageFromDomain(m)
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(msgModel).Error; err != nil {
		return translate(err)
	}
	m.ID = msgModel.ID
	m.CreatedAt = msgModel.CreatedAt
	return nil
}

func (r *messageRepository) GetByShortID(ctx context.Context, shortID string) (domain.Message, error) {
	var rows []model.MessageRow
	err := r.selectMessages(ctx).
		Where("m.short_id = ?", shortID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return domain.Message{}, err
	}
	if len(rows) == 0 {
		return domain.Message{}, domain.ErrNotFound
	}
	return rows[0].ToDomain(), nil
}

func (r *messageRepository) FetchInbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	var rows []model.MessageRow
	err := r.selectMessages(ctx).
		Where("m.recipient_user_id = ? AND m.deleted_by_recipient = ?", userID, false).
		Order("m.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMessages(rows), nil
}

func (r *messageRepository) FetchOutbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	var rows []model.MessageRow
	err := r.selectMessages(ctx).
		Where("m.author_user_id = ? AND m.deleted_by_author = ?", userID, false).
		Order("m.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMessages(rows), nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64) error {
	return r.DB.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", id).
		UpdateColumn("has_been_read", true).Error
}

// Update persists the read and per-side deletion flags only.
func (r *messageRepository) Update(ctx context.Context, m *domain.Message) error {
	result := r.DB.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", m.ID).
		UpdateColumns(map[string]any{
			"has_been_read":        m.HasBeenRead,
			"deleted_by_author":    m.DeletedByAuthor,
			"deleted_by_recipient": m.DeletedByRecipient,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Message{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
