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

// XClient 通过 X API v2 按回复链逐条发布
type XClient struct {
	client *resty.Client
}

func NewXClient(cfg config.XConfig) *XClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.BearerToken).
		SetTimeout(30 * time.Second)
	return &XClient{client: client}
}

func (s *XClient) Name() string {
	return "x"
}

type xTweetRequest struct {
	Text  string `json:"text"`
	Reply *struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply,omitempty"`
}

type xTweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PublishThread 首条帖子独立发出，后续帖子挂在前一条的回复上
func (s *XClient) PublishThread(ctx context.Context, posts []PlatformPost) ([]string, error) {
	if len(posts) == 0 {
		return nil, errors.New("no posts to publish")
	}

	ids := make([]string, 0, len(posts))
	prevID := ""

	for i, post := range posts {
		body := &xTweetRequest{Text: post.Content}
		if prevID != "" {
			body.Reply = &struct {
				InReplyToTweetID string `json:"in_reply_to_tweet_id"`
			}{InReplyToTweetID: prevID}
		}

		var result xTweetResponse
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&result).
			Post("/2/tweets")
		if err != nil {
			return ids, fmt.Errorf("x publish transport error: %w", err)
		}
		if resp.IsError() {
			log.ErrorContext(ctx, "X 发布失败", "index", i, "status", resp.StatusCode(), "body", resp.String())
			return ids, classifyStatus(resp)
		}
		if result.Data.ID == "" {
			return ids, fmt.Errorf("%w: empty tweet id", ErrRejected)
		}

		prevID = result.Data.ID
		ids = append(ids, result.Data.ID)
	}

	return ids, nil
}
