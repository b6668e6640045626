package service

import (
	log "log/slog"

	"ThreadFarm/internal/pkg/minio"
	"ThreadFarm/internal/pkg/source"
	"ThreadFarm/internal/pkg/util"
	"context"
	"strings"
)

type TranscribeService interface {
	TranscribeFile(ctx context.Context, objectKey string) (string, error)
	TranscribeURL(ctx context.Context, pageURL string) (title string, transcript string, err error)
}

type TranscribeServiceImpl struct{}

func NewTranscribeService() TranscribeService {
	return &TranscribeServiceImpl{}
}

// TranscribeFile 把对象存储里的音视频转写成文本
func (s *TranscribeServiceImpl) TranscribeFile(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", ErrParamInvalid
	}
	text, err := util.AudioStreamToText(ctx, minio.GetPublicURL(objectKey))
	if err != nil {
		log.ErrorContext(ctx, "音视频转写失败", "object", objectKey, "err", err)
		return "", ErrTranscribeFailed
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrTranscribeFailed
	}
	return text, nil
}

// TranscribeURL 转写外部视频链接。音轨抓取失败时退化为抓取页面正文
func (s *TranscribeServiceImpl) TranscribeURL(ctx context.Context, pageURL string) (string, string, error) {
	if !util.IsVideoURL(pageURL) {
		return "", "", ErrSourceUnreachable
	}

	title := ""
	if meta, err := source.FetchPageMeta(ctx, pageURL); err == nil {
		title = meta.Title
	}

	text, err := util.AudioStreamToText(ctx, pageURL)
	if err == nil && strings.TrimSpace(text) != "" {
		return title, text, nil
	}
	log.WarnContext(ctx, "音轨转写失败，回退到页面正文抓取", "url", pageURL, "err", err)

	pageTitle, article, err := source.ExtractArticle(ctx, pageURL)
	if err != nil || strings.TrimSpace(article) == "" {
		log.ErrorContext(ctx, "页面正文抓取失败", "url", pageURL, "err", err)
		return "", "", ErrSourceUnreachable
	}
	if title == "" {
		title = pageTitle
	}
	return title, article, nil
}
