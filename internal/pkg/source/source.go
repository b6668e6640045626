package source

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	readability "github.com/go-shiori/go-readability"
)

var httpClient = resty.New().
	SetTimeout(20 * time.Second).
	SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

// PageMeta 外部素材页面的元信息
type PageMeta struct {
	Title       string
	Description string
}

// FetchPageMeta 抓取素材链接页面，解析 og:title / og:description
func FetchPageMeta(ctx context.Context, pageURL string) (*PageMeta, error) {
	resp, err := httpClient.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch page failed: %s", resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, err
	}

	meta := &PageMeta{}
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = strings.TrimSpace(v)
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		meta.Description = strings.TrimSpace(v)
	}

	if meta.Title == "" {
		return nil, errors.New("page has no usable title")
	}
	return meta, nil
}

// ExtractArticle 对文章类链接做正文抽取，返回标题与纯文本
func ExtractArticle(ctx context.Context, pageURL string) (string, string, error) {
	resp, err := httpClient.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("fetch article failed: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("fetch article failed: %s", resp.Status())
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", "", err
	}

	article, err := readability.FromReader(strings.NewReader(resp.String()), parsed)
	if err != nil {
		log.WarnContext(ctx, "正文抽取失败", "url", pageURL, "err", err)
		return "", "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", "", errors.New("article has no extractable text")
	}
	return article.Title, text, nil
}
