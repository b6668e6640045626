package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostService interface {
	CreatePosts(ctx context.Context, userID uint64, createDTO *dto.PostBulkCreateDTO) ([]*model.Post, error)
	GetPostsByThread(ctx context.Context, userID uint64, threadID uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, userID uint64, postID uint64, patch *dto.PostPatchDTO) (*model.Post, error)
	ReorderPosts(ctx context.Context, userID uint64, reorderDTO *dto.PostReorderDTO) ([]*model.Post, error)
	DeletePost(ctx context.Context, userID uint64, postID uint64) error
}

type PostServiceImpl struct {
	postRepo   repository.PostRepo
	threadRepo repository.ThreadRepo
}

func NewPostService(postRepo repository.PostRepo, threadRepo repository.ThreadRepo) PostService {
	return &PostServiceImpl{
		postRepo:   postRepo,
		threadRepo: threadRepo,
	}
}

// CreatePosts 追加写入帖子，序号接在现有帖子之后保持连续
func (s *PostServiceImpl) CreatePosts(ctx context.Context, userID uint64, createDTO *dto.PostBulkCreateDTO) ([]*model.Post, error) {
	if _, err := s.threadRepo.GetThread(ctx, userID, createDTO.ThreadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}

	existing, err := s.postRepo.GetPostsByThread(ctx, userID, createDTO.ThreadID)
	if err != nil {
		return nil, err
	}

	posts := make([]*model.Post, 0, len(createDTO.Posts))
	for i, item := range createDTO.Posts {
		posts = append(posts, &model.Post{
			ThreadID:  createDTO.ThreadID,
			UserID:    userID,
			Content:   item.Content,
			ImageURL:  item.ImageURL,
			PostOrder: len(existing) + i + 1,
		})
	}
	if err = s.postRepo.CreatePosts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostServiceImpl) GetPostsByThread(ctx context.Context, userID uint64, threadID uint64) ([]*model.Post, error) {
	if _, err := s.threadRepo.GetThread(ctx, userID, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return s.postRepo.GetPostsByThread(ctx, userID, threadID)
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID uint64, postID uint64, patch *dto.PostPatchDTO) (*model.Post, error) {
	updates := make(map[string]any)
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	if err := s.postRepo.UpdatePost(ctx, userID, postID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post, err := s.postRepo.GetPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ReorderPosts 整串重排序。orders 必须恰好覆盖该串全部帖子且构成 1..n 的排列
func (s *PostServiceImpl) ReorderPosts(ctx context.Context, userID uint64, reorderDTO *dto.PostReorderDTO) ([]*model.Post, error) {
	existing, err := s.GetPostsByThread(ctx, userID, reorderDTO.ThreadID)
	if err != nil {
		return nil, err
	}
	if len(reorderDTO.Orders) != len(existing) {
		return nil, ErrPostOrderInvalid
	}

	known := make(map[uint64]bool, len(existing))
	for _, p := range existing {
		known[p.ID] = true
	}
	orders := make(map[uint64]int, len(reorderDTO.Orders))
	seen := make(map[int]bool, len(reorderDTO.Orders))
	for _, o := range reorderDTO.Orders {
		if !known[o.ID] || o.PostOrder < 1 || o.PostOrder > len(existing) || seen[o.PostOrder] {
			return nil, ErrPostOrderInvalid
		}
		if _, dup := orders[o.ID]; dup {
			return nil, ErrPostOrderInvalid
		}
		seen[o.PostOrder] = true
		orders[o.ID] = o.PostOrder
	}

	if err = s.postRepo.ReorderPosts(ctx, userID, reorderDTO.ThreadID, orders); err != nil {
		return nil, err
	}
	return s.postRepo.GetPostsByThread(ctx, userID, reorderDTO.ThreadID)
}

// DeletePost 删除后压缩剩余帖子的序号，保持从 1 连续
func (s *PostServiceImpl) DeletePost(ctx context.Context, userID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if err = s.postRepo.DeletePost(ctx, userID, postID); err != nil {
		return err
	}

	remaining, err := s.postRepo.GetPostsByThread(ctx, userID, post.ThreadID)
	if err != nil {
		return err
	}
	orders := make(map[uint64]int, len(remaining))
	changed := false
	for i, p := range remaining {
		orders[p.ID] = i + 1
		if p.PostOrder != i+1 {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.postRepo.ReorderPosts(ctx, userID, post.ThreadID, orders)
}
