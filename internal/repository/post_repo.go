package repository

import (
	"ThreadFarm/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePosts(ctx context.Context, posts []*model.Post) error
	GetPost(ctx context.Context, userID uint64, id uint64) (*model.Post, error)
	GetPostsByThread(ctx context.Context, userID uint64, threadID uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, userID uint64, id uint64, updates map[string]interface{}) error
	ReorderPosts(ctx context.Context, userID uint64, threadID uint64, orders map[uint64]int) error
	DeletePost(ctx context.Context, userID uint64, id uint64) error
	ReplaceThreadPosts(ctx context.Context, threadID uint64, posts []*model.Post) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s PostRepoImpl) CreatePosts(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(posts).Error
}

func (s PostRepoImpl) GetPost(ctx context.Context, userID uint64, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetPostsByThread(ctx context.Context, userID uint64, threadID uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Order("post_order ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) UpdatePost(ctx context.Context, userID uint64, id uint64, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
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

// ReorderPosts 在一个事务中重写受影响帖子的顺序号。
// idx_thread_order 按语句生效，交换两行会在中间状态撞索引，
// 所以先整体挪到负数区，再写入最终顺序号。
func (s PostRepoImpl) ReorderPosts(ctx context.Context, userID uint64, threadID uint64, orders map[uint64]int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			result := tx.Model(&model.Post{}).
				Where("id = ? AND thread_id = ? AND user_id = ?", id, threadID, userID).
				Update("post_order", -order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		for id, order := range orders {
			if err := tx.Model(&model.Post{}).
				Where("id = ? AND thread_id = ? AND user_id = ?", id, threadID, userID).
				Update("post_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s PostRepoImpl) DeletePost(ctx context.Context, userID uint64, id uint64) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceThreadPosts 发布落库时整体替换推文串的帖子集合
func (s PostRepoImpl) ReplaceThreadPosts(ctx context.Context, threadID uint64, posts []*model.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", threadID).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if len(posts) == 0 {
			return nil
		}
		return tx.Create(posts).Error
	})
}
