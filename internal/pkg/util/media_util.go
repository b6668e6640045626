package util

import (
	"ThreadFarm/internal/api/config"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// GetSafeContentType 嗅探文件真实类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	contentType := http.DetectContentType(buf[:n])
	if i := strings.Index(contentType, ";"); i > 0 {
		contentType = contentType[:i]
	}
	return contentType, nil
}

// GetDuration 获取音视频时长
func GetDuration(ctx context.Context, mediaUrl string) (float64, error) {
	ffprobePath := config.Cfg.LibPath.FFprobe

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"-i", mediaUrl,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe 解析失败: %w", err)
	}

	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

// DecodeImage 解码图片并返回尺寸
func DecodeImage(reader io.ReadSeeker) (width, height int, err error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return 0, 0, err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// MakeThumbnail 生成等比缩略图，JPEG 编码
func MakeThumbnail(reader io.ReadSeeker, maxEdge int) ([]byte, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return nil, err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AudioStreamToText 将音视频源转写为文本。
// FFmpeg 输出标准 16kHz 单声道 WAV 管道流，Whisper 从管道读取识别。
func AudioStreamToText(ctx context.Context, mediaUrl string) (string, error) {
	ffmpegPath := config.Cfg.LibPath.FFmpeg
	whisperPath := config.Cfg.LibPath.Whisper
	modelPath := config.Cfg.LibPath.WhisperModel

	ffmpegCmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", mediaUrl,
		"-ar", "16000", "-ac", "1", "-c:a", "pcm_s16le", "-f", "wav", "pipe:1")

	whisperCmd := exec.CommandContext(ctx, whisperPath,
		"-m", modelPath,
		"-l", "en",
		"--no-timestamps",
		"-f", "-",
	)

	// 建立管道连接
	pr, pw := io.Pipe()
	ffmpegCmd.Stdout = pw
	whisperCmd.Stdin = pr

	var outBuf bytes.Buffer
	whisperCmd.Stdout = &outBuf

	// 启动进程
	if err := ffmpegCmd.Start(); err != nil {
		return "", err
	}
	if err := whisperCmd.Start(); err != nil {
		return "", err
	}

	// 异步监控生产者
	go func() {
		_ = ffmpegCmd.Wait()
		_ = pw.Close()
	}()

	// 等待 Whisper 识别完成
	if err := whisperCmd.Wait(); err != nil {
		return "", err
	}

	return strings.TrimSpace(outBuf.String()), nil
}
