package llm

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
)

var (
	// ErrInvalidRequest 调用方输入缺失或风格不在枚举内
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrEmptyResponse 上游返回了空内容
	ErrEmptyResponse = errors.New("empty completion response")
)

const (
	threadTemperature = 0.7
	threadMaxTokens   = 2000
)

// GenerateThread 将转写文本按所选风格改写为一组帖子。
// 入参校验失败直接返回，不会发起上游请求。
func GenerateThread(ctx context.Context, transcript string, tone string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrInvalidRequest
	}
	prompt, ok := TonePrompt(tone)
	if !ok || prompt == "" {
		return nil, ErrInvalidRequest
	}

	resp, err := fetchModel(ctx, prompt, transcript, threadTemperature, threadMaxTokens)
	if err != nil {
		log.ErrorContext(ctx, "AI大模型请求失败", "err", err)
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, ErrEmptyResponse
	}

	posts := SplitPosts(resp.Choices[0].Content)
	if len(posts) == 0 {
		return nil, ErrEmptyResponse
	}
	return posts, nil
}

// SplitPosts 按空行切分上游返回的整段文本，去掉空段，保持原顺序
func SplitPosts(content string) []string {
	segments := strings.Split(content, "\n\n")
	posts := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		posts = append(posts, seg)
	}
	return posts
}
