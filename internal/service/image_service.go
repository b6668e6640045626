package service

import (
	log "log/slog"

	"ThreadFarm/internal/pkg/llm"
	"ThreadFarm/internal/pkg/minio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ImageService interface {
	GenerateImage(ctx context.Context, userID uint64, prompt string) (string, error)
}

type ImageServiceImpl struct{}

func NewImageService() ImageService {
	return &ImageServiceImpl{}
}

// GenerateImage 文生图并上传到对象存储，返回可公开访问的 URL
func (s *ImageServiceImpl) GenerateImage(ctx context.Context, userID uint64, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrParamInvalid
	}

	data, err := llm.GenerateImage(ctx, prompt)
	if err != nil {
		log.ErrorContext(ctx, "配图生成失败", "err", err)
		return "", ErrImageGenerate
	}

	objectName := fmt.Sprintf("images/%d/%s.png", userID, uuid.NewString())
	key, err := minio.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), "image/png")
	if err != nil {
		log.ErrorContext(ctx, "配图上传失败", "err", err)
		return "", ErrImageGenerate
	}
	return minio.GetPublicURL(key), nil
}
