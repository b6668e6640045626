package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DraftService interface {
	CreateDraft(ctx context.Context, userID uint64, createDTO *dto.DraftCreateDTO) (*model.Draft, error)
	GetDraft(ctx context.Context, userID uint64, draftID uint64) (*model.Draft, error)
	ListDrafts(ctx context.Context, userID uint64) ([]*model.Draft, error)
	UpdateDraft(ctx context.Context, userID uint64, updateDTO *dto.DraftUpdateDTO) (*model.Draft, error)
	DeleteDraft(ctx context.Context, userID uint64, draftID uint64) error
}

type DraftServiceImpl struct {
	draftRepo repository.DraftRepo
}

func NewDraftService(draftRepo repository.DraftRepo) DraftService {
	return &DraftServiceImpl{
		draftRepo: draftRepo,
	}
}

func (s *DraftServiceImpl) CreateDraft(ctx context.Context, userID uint64, createDTO *dto.DraftCreateDTO) (*model.Draft, error) {
	draft := &model.Draft{
		UserID:   userID,
		Title:    createDTO.Title,
		Content:  createDTO.Content,
		Step:     createDTO.Step,
		Settings: createDTO.Settings,
		Posts:    createDTO.Posts,
	}
	if err := s.draftRepo.CreateDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DraftServiceImpl) GetDraft(ctx context.Context, userID uint64, draftID uint64) (*model.Draft, error) {
	draft, err := s.draftRepo.GetDraft(ctx, userID, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (s *DraftServiceImpl) ListDrafts(ctx context.Context, userID uint64) ([]*model.Draft, error) {
	return s.draftRepo.GetDraftsByUser(ctx, userID)
}

func (s *DraftServiceImpl) UpdateDraft(ctx context.Context, userID uint64, updateDTO *dto.DraftUpdateDTO) (*model.Draft, error) {
	updates := make(map[string]any)
	patch := updateDTO.Updates
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Step != nil {
		updates["step"] = *patch.Step
	}
	if patch.Settings != nil {
		updates["settings"] = []byte(patch.Settings)
	}
	if patch.Posts != nil {
		updates["posts"] = []byte(patch.Posts)
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	if err := s.draftRepo.UpdateDraft(ctx, userID, updateDTO.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return s.GetDraft(ctx, userID, updateDTO.ID)
}

func (s *DraftServiceImpl) DeleteDraft(ctx context.Context, userID uint64, draftID uint64) error {
	err := s.draftRepo.DeleteDraft(ctx, userID, draftID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDraftNotFound
	}
	return err
}
