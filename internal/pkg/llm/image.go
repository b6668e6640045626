package llm

import (
	"ThreadFarm/internal/api/config"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

var imageClient = resty.New().SetTimeout(60 * time.Second)

// GenerateImage 调用图像生成接口，返回解码后的图片数据。
// langchaingo 未覆盖 images 端点，这里直接走 HTTP。
func GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	cfg := config.Cfg.LLM

	var result imageResponse
	resp, err := imageClient.R().
		SetContext(ctx).
		SetAuthToken(cfg.ApiKey).
		SetBody(&imageRequest{
			Model:          cfg.ImageModel,
			Prompt:         prompt,
			N:              1,
			Size:           "1024x1024",
			ResponseFormat: "b64_json",
		}).
		SetResult(&result).
		Post(cfg.URL + "/images/generations")
	if err != nil {
		log.ErrorContext(ctx, "图像生成请求失败", "err", err)
		return nil, err
	}

	if resp.IsError() {
		if result.Error != nil {
			return nil, fmt.Errorf("image generation failed: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("image generation failed: %s", resp.Status())
	}

	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return nil, errors.New("image generation returned no data")
	}

	return base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
}
