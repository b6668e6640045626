package repository

import (
	"ThreadFarm/internal/model"
	"context"

	"gorm.io/gorm"
)

type DraftRepo interface {
	CreateDraft(ctx context.Context, draft *model.Draft) error
	GetDraft(ctx context.Context, userID uint64, id uint64) (*model.Draft, error)
	GetDraftsByUser(ctx context.Context, userID uint64) ([]*model.Draft, error)
	UpdateDraft(ctx context.Context, userID uint64, id uint64, updates map[string]interface{}) error
	DeleteDraft(ctx context.Context, userID uint64, id uint64) error
}

type DraftRepoImpl struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepo {
	return &DraftRepoImpl{
		db: db,
	}
}

func (s DraftRepoImpl) CreateDraft(ctx context.Context, draft *model.Draft) error {
	return s.db.WithContext(ctx).Create(draft).Error
}

func (s DraftRepoImpl) GetDraft(ctx context.Context, userID uint64, id uint64) (*model.Draft, error) {
	var draft model.Draft
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s DraftRepoImpl) GetDraftsByUser(ctx context.Context, userID uint64) ([]*model.Draft, error) {
	var drafts []*model.Draft
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func (s DraftRepoImpl) UpdateDraft(ctx context.Context, userID uint64, id uint64, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&model.Draft{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s DraftRepoImpl) DeleteDraft(ctx context.Context, userID uint64, id uint64) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Draft{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
