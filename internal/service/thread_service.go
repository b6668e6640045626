package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/llm"
	"ThreadFarm/internal/repository"
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type ThreadService interface {
	CreateThread(ctx context.Context, userID uint64, createDTO *dto.ThreadCreateDTO) (*model.Thread, error)
	GetThread(ctx context.Context, userID uint64, threadID uint64) (*model.Thread, error)
	ListThreads(ctx context.Context, userID uint64) ([]*model.Thread, error)
	UpdateThread(ctx context.Context, userID uint64, updateDTO *dto.ThreadUpdateDTO) (*model.Thread, error)
	DeleteThread(ctx context.Context, userID uint64, threadID uint64) error
}

type ThreadServiceImpl struct {
	threadRepo repository.ThreadRepo
}

func NewThreadService(threadRepo repository.ThreadRepo) ThreadService {
	return &ThreadServiceImpl{
		threadRepo: threadRepo,
	}
}

func (s *ThreadServiceImpl) CreateThread(ctx context.Context, userID uint64, createDTO *dto.ThreadCreateDTO) (*model.Thread, error) {
	if createDTO.Tone != "" && !llm.ValidTone(createDTO.Tone) {
		return nil, ErrToneInvalid
	}

	thread := &model.Thread{}
	if err := copier.Copy(thread, createDTO); err != nil {
		return nil, err
	}
	thread.UserID = userID
	// 新建的线程一律落为草稿态，发布动作另走发布流程
	thread.Status = consts.ThreadStatusDraft

	if err := s.threadRepo.CreateThread(ctx, thread); err != nil {
		return nil, err
	}
	return s.GetThread(ctx, userID, thread.ID)
}

func (s *ThreadServiceImpl) GetThread(ctx context.Context, userID uint64, threadID uint64) (*model.Thread, error) {
	thread, err := s.threadRepo.GetThread(ctx, userID, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return thread, nil
}

func (s *ThreadServiceImpl) ListThreads(ctx context.Context, userID uint64) ([]*model.Thread, error) {
	return s.threadRepo.GetThreadsByUser(ctx, userID)
}

func (s *ThreadServiceImpl) UpdateThread(ctx context.Context, userID uint64, updateDTO *dto.ThreadUpdateDTO) (*model.Thread, error) {
	updates := make(map[string]any)
	patch := updateDTO.Updates
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Transcript != nil {
		updates["transcript"] = *patch.Transcript
	}
	if patch.FileURL != nil {
		updates["file_url"] = *patch.FileURL
	}
	if patch.Tone != nil {
		if !llm.ValidTone(*patch.Tone) {
			return nil, ErrToneInvalid
		}
		updates["tone"] = *patch.Tone
	}
	if patch.Status != nil {
		if *patch.Status != consts.ThreadStatusDraft && *patch.Status != consts.ThreadStatusPublished {
			return nil, ErrStatusTransition
		}
		current, err := s.GetThread(ctx, userID, updateDTO.ID)
		if err != nil {
			return nil, err
		}
		// 已发布的线程不允许改回草稿
		if current.Status == consts.ThreadStatusPublished && *patch.Status == consts.ThreadStatusDraft {
			return nil, ErrStatusTransition
		}
		updates["status"] = *patch.Status
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	if err := s.threadRepo.UpdateThread(ctx, userID, updateDTO.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return s.GetThread(ctx, userID, updateDTO.ID)
}

func (s *ThreadServiceImpl) DeleteThread(ctx context.Context, userID uint64, threadID uint64) error {
	err := s.threadRepo.DeleteThread(ctx, userID, threadID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrThreadNotFound
	}
	return err
}
