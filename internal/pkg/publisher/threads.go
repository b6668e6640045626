package publisher

import (
	"ThreadFarm/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// ThreadsClient 通过 Threads Graph API 发布。
// 每条帖子先创建媒体容器，再 publish，回复链通过 reply_to_id 串联。
type ThreadsClient struct {
	client    *resty.Client
	accountID string
}

func NewThreadsClient(cfg config.ThreadsConfig) *ThreadsClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetQueryParam("access_token", cfg.AccessToken).
		SetTimeout(30 * time.Second)
	return &ThreadsClient{client: client, accountID: cfg.AccountID}
}

func (s *ThreadsClient) Name() string {
	return "threads"
}

type threadsIDResponse struct {
	ID string `json:"id"`
}

func (s *ThreadsClient) PublishThread(ctx context.Context, posts []PlatformPost) ([]string, error) {
	if len(posts) == 0 {
		return nil, errors.New("no posts to publish")
	}

	ids := make([]string, 0, len(posts))
	prevID := ""

	for i, post := range posts {
		containerID, err := s.createContainer(ctx, post, prevID)
		if err != nil {
			log.ErrorContext(ctx, "Threads 容器创建失败", "index", i, "err", err)
			return ids, err
		}

		publishedID, err := s.publishContainer(ctx, containerID)
		if err != nil {
			log.ErrorContext(ctx, "Threads 发布失败", "index", i, "err", err)
			return ids, err
		}

		prevID = publishedID
		ids = append(ids, publishedID)
	}

	return ids, nil
}

func (s *ThreadsClient) createContainer(ctx context.Context, post PlatformPost, replyTo string) (string, error) {
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("text", post.Content)

	if post.ImageURL != nil && *post.ImageURL != "" {
		req.SetQueryParam("media_type", "IMAGE").
			SetQueryParam("image_url", *post.ImageURL)
	} else {
		req.SetQueryParam("media_type", "TEXT")
	}
	if replyTo != "" {
		req.SetQueryParam("reply_to_id", replyTo)
	}

	var result threadsIDResponse
	resp, err := req.SetResult(&result).Post(fmt.Sprintf("/%s/threads", s.accountID))
	if err != nil {
		return "", fmt.Errorf("threads container transport error: %w", err)
	}
	if resp.IsError() {
		return "", classifyStatus(resp)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: empty container id", ErrRejected)
	}
	return result.ID, nil
}

func (s *ThreadsClient) publishContainer(ctx context.Context, containerID string) (string, error) {
	var result threadsIDResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("creation_id", containerID).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/threads_publish", s.accountID))
	if err != nil {
		return "", fmt.Errorf("threads publish transport error: %w", err)
	}
	if resp.IsError() {
		return "", classifyStatus(resp)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: empty post id", ErrRejected)
	}
	return result.ID, nil
}
