package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when downloaded data is not a recognised image.
var ErrNotImage = errors.New("data is not a valid image")

// MaxDownloadSize caps how many bytes Download reads from a response body.
const MaxDownloadSize = 20 << 20

// Info 图片的基本信息
type Info struct {
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// IsImage 通过魔术字节检查数据是否为支持的图片格式
func IsImage(data []byte) bool {
	return sniff(data) != ""
}

func sniff(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "jpeg"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "webp"
	case len(data) >= 4 && string(data[0:4]) == "GIF8":
		return "gif"
	case isSVG(data):
		return "svg"
	}
	return ""
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	if bytes.HasPrefix(head, []byte("<?xml")) {
		return bytes.Contains(data[:min(len(data), 1024)], []byte("<svg"))
	}
	return bytes.HasPrefix(head, []byte("<svg"))
}

// Probe 识别图片格式并读取尺寸
//
// SVG 只做格式识别，不解析尺寸。
func Probe(data []byte) (Info, error) {
	format := sniff(data)
	if format == "" {
		return Info{}, ErrNotImage
	}
	if format == "svg" {
		return Info{Format: format}, nil
	}
	cfg, decoded, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("decode %s header: %w", format, err)
	}
	return Info{Format: decoded, Width: cfg.Width, Height: cfg.Height}, nil
}

// Download 下载图片数据
func Download(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// Fetch downloads url and verifies the payload is an image.
func Fetch(ctx context.Context, url string, client *http.Client) ([]byte, Info, error) {
	data, err := Download(ctx, url, client)
	if err != nil {
		return nil, Info{}, err
	}
	info, err := Probe(data)
	if err != nil {
		return nil, Info{}, err
	}
	return data, info, nil
}
