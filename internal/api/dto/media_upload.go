package dto

// MediaTempMetadata 上传后缓存在 Redis 的临时元数据，清理任务依赖 CreatedAt
type MediaTempMetadata struct {
	MimeType  string  `json:"mime_type"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Duration  float64 `json:"duration"`
	ThumbKey  string  `json:"thumb_key,omitempty"`
	CreatedAt int64   `json:"created_at"`
}
