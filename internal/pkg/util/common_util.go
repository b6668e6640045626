package util

import (
	"regexp"
	"strings"
)

var videoURLRegex = regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be)/.+`)

// IsVideoURL 判断素材链接是否为支持的视频站点链接
func IsVideoURL(url string) bool {
	return videoURLRegex.MatchString(url)
}

// DeriveTitle 取转写文本的前六个词作为标题
func DeriveTitle(transcript string) string {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return "Untitled Thread"
	}
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}
