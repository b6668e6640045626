package service

import (
	log "log/slog"

	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/minio"
	"ThreadFarm/internal/pkg/redis"
	"ThreadFarm/internal/pkg/util"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const thumbnailMaxEdge = 480

// MediaUploadResultDTO 上传结果
type MediaUploadResultDTO struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	MimeType  string `json:"mime_type"`
	ThumbURL  string `json:"thumb_url,omitempty"`
}

type MediaService interface {
	UploadMedia(ctx context.Context, userID uint64, fileName string, reader io.ReadSeeker, size int64) (*MediaUploadResultDTO, error)
}

type MediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &MediaServiceImpl{}
}

// UploadMedia 上传素材到对象存储。类型以嗅探结果为准，仅接受音频、视频和图片
func (s *MediaServiceImpl) UploadMedia(ctx context.Context, userID uint64, fileName string, reader io.ReadSeeker, size int64) (*MediaUploadResultDTO, error) {
	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, err
	}
	prefix := strings.SplitN(contentType, "/", 2)[0]
	if prefix != consts.MimePrefixAudio && prefix != consts.MimePrefixVideo && prefix != consts.MimePrefixImage {
		return nil, ErrFileNotSupported
	}

	objectName := fmt.Sprintf("media/%d/%s%s", userID, uuid.NewString(), path.Ext(fileName))
	key, err := minio.UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "素材上传失败", "err", err)
		return nil, err
	}

	result := &MediaUploadResultDTO{
		ObjectKey: key,
		URL:       minio.GetPublicURL(key),
		MimeType:  contentType,
	}
	meta := &dto.MediaTempMetadata{
		MimeType:  contentType,
		CreatedAt: time.Now().Unix(),
	}

	switch prefix {
	case consts.MimePrefixImage:
		if _, err = reader.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if meta.Width, meta.Height, err = util.DecodeImage(reader); err != nil {
			return nil, ErrFileNotSupported
		}
		thumb, err := util.MakeThumbnail(reader, thumbnailMaxEdge)
		if err == nil {
			thumbKey, err := minio.UploadFile(ctx, objectName+".thumb.jpg", bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
			if err == nil {
				meta.ThumbKey = thumbKey
				result.ThumbURL = minio.GetPublicURL(thumbKey)
			}
		}
	default:
		// 时长探测失败不阻断上传
		if duration, err := util.GetDuration(ctx, result.URL); err == nil {
			meta.Duration = duration
		}
	}

	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	if err = redis.HSet(ctx, consts.MediaTempKey, key, string(rawMeta)); err != nil {
		log.WarnContext(ctx, "素材元数据缓存失败", "key", key, "err", err)
	}
	return result, nil
}
