package publisher

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnauthorized 平台凭据失效
	ErrUnauthorized = errors.New("platform credentials rejected")
	// ErrRateLimited 平台限流
	ErrRateLimited = errors.New("platform rate limit hit")
	// ErrRejected 平台拒绝了内容
	ErrRejected = errors.New("platform rejected the post")
)

// PlatformPost 待发布的单条帖子
type PlatformPost struct {
	Content  string
	ImageURL *string
}

// Client 单个平台的发布客户端。
// 返回平台侧生成的帖子 ID 列表，顺序与入参一致。
type Client interface {
	Name() string
	PublishThread(ctx context.Context, posts []PlatformPost) ([]string, error)
}

func classifyStatus(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode() == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status())
	default:
		return fmt.Errorf("platform request failed: %s", resp.Status())
	}
}
