package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/llm"
	"context"
	"errors"
	"strings"
)

type GenerateService interface {
	GenerateThread(ctx context.Context, generateDTO *dto.GenerateThreadDTO) ([]string, error)
}

type GenerateServiceImpl struct{}

func NewGenerateService() GenerateService {
	return &GenerateServiceImpl{}
}

// GenerateThread 根据转写文本和风格生成一串帖子。入参不合法时不触发上游调用
func (s *GenerateServiceImpl) GenerateThread(ctx context.Context, generateDTO *dto.GenerateThreadDTO) ([]string, error) {
	if strings.TrimSpace(generateDTO.Transcript) == "" {
		return nil, ErrTranscriptEmpty
	}
	if !llm.ValidTone(generateDTO.Tone) {
		return nil, ErrToneInvalid
	}

	posts, err := llm.GenerateThread(ctx, generateDTO.Transcript, generateDTO.Tone)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrInvalidRequest):
			return nil, ErrParamInvalid
		case errors.Is(err, llm.ErrEmptyResponse):
			return nil, ErrThreadEmptyResponse
		default:
			return nil, ErrThreadGenerate
		}
	}
	return posts, nil
}
