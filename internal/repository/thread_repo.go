package repository

import (
	"ThreadFarm/internal/model"
	"context"

	"gorm.io/gorm"
)

type ThreadRepo interface {
	CreateThread(ctx context.Context, thread *model.Thread) error
	GetThread(ctx context.Context, userID uint64, id uint64) (*model.Thread, error)
	GetThreadsByUser(ctx context.Context, userID uint64) ([]*model.Thread, error)
	UpdateThread(ctx context.Context, userID uint64, id uint64, updates map[string]interface{}) error
	DeleteThread(ctx context.Context, userID uint64, id uint64) error
}

type ThreadRepoImpl struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepo {
	return &ThreadRepoImpl{
		db: db,
	}
}

func (s ThreadRepoImpl) CreateThread(ctx context.Context, thread *model.Thread) error {
	return s.db.WithContext(ctx).Create(thread).Error
}

// GetThread 按主键取记录，归属校验在数据层完成
func (s ThreadRepoImpl) GetThread(ctx context.Context, userID uint64, id uint64) (*model.Thread, error) {
	var thread model.Thread
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s ThreadRepoImpl) GetThreadsByUser(ctx context.Context, userID uint64) ([]*model.Thread, error) {
	var threads []*model.Thread
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, err
	}
	return threads, nil
}

func (s ThreadRepoImpl) UpdateThread(ctx context.Context, userID uint64, id uint64, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&model.Thread{}).
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

// DeleteThread 同一事务中级联删除帖子
func (s ThreadRepoImpl) DeleteThread(ctx context.Context, userID uint64, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Thread{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("thread_id = ?", id).Delete(&model.Post{}).Error
	})
}
