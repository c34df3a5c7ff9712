package mdlite

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/media"
	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/youtube"
)

// Process 完整管道：输入文本 → 有序的内容列表
//
// 步骤：
//  1. 解析为 Document
//  2. 按顺序遍历块：
//     - 开启 WithFetchMedia 时，图片块下载为 Photo，YouTube 块下载封面为 Photo，
//     失败时记录日志并回退为带链接 entity 的 Text
//     - 其他块累积后扁平化，按 MaxLength 拆分为 Text
//  3. 返回 Text | Photo 的有序列表
//
// 只有 ctx 被取消时返回错误。
func Process(ctx context.Context, input string, opts ...Option) ([]Content, error) {
	options := applyOptions(opts...)
	config := options.renderConfig()
	doc := Convert(input, config)

	result := make([]Content, 0)
	pending := make([]Block, 0)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		text, entities := Flatten(pending)
		appendTextChunks(&result, text, entities, doc.Direction, options.MaxLength)
		pending = pending[:0]
	}

	for i := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		block := doc.Blocks[i]
		if !options.FetchMedia || (block.Kind != types.BlockImage && block.Kind != types.BlockYouTube) {
			pending = append(pending, block)
			continue
		}

		photo, err := fetchBlockMedia(ctx, &block, config, options.HTTPClient)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			Logger.Printf("media download failed for %s block: %v", block.Kind, err)
			pending = append(pending, block)
			continue
		}
		flush()
		result = append(result, photo)
	}
	flush()

	return result, nil
}

// appendTextChunks 按 maxLength 拆分文本并追加 Text 对象
func appendTextChunks(
	result *[]Content,
	text string,
	entities []Entity,
	dir Direction,
	maxLength int,
) {
	chunks := SplitEntities(text, entities, maxLength)
	for _, chunk := range chunks {
		chunkText, chunkEntities := stripNewlinesAdjust(chunk.Text, chunk.Entities)
		if chunkText != "" {
			*result = append(*result, &Text{
				Text:      chunkText,
				Entities:  chunkEntities,
				Direction: dir,
				ContentTrace: ContentTrace{
					SourceType: TraceText,
				},
			})
		}
	}
}

// fetchBlockMedia 下载图片块或视频封面
func fetchBlockMedia(ctx context.Context, block *Block, config *RenderConfig, client *http.Client) (*Photo, error) {
	var (
		url     string
		caption string
		trace   ContentTrace
	)
	switch block.Kind {
	case types.BlockImage:
		url = block.ImageURL
		caption = block.ImageURL
		trace = ContentTrace{SourceType: TraceImage}
	case types.BlockYouTube:
		url = youtube.ThumbnailURL(config.ThumbnailBaseURL, block.Video.ID)
		caption = block.Video.URL
		trace = ContentTrace{
			SourceType: TraceYouTube,
			Extra: map[string]interface{}{
				"video_id":  block.Video.ID,
				"embed_url": block.Video.EmbedURL,
			},
		}
	default:
		return nil, fmt.Errorf("block kind %s has no media", block.Kind)
	}

	data, info, err := media.Fetch(ctx, url, client)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	return &Photo{
		FileName:    mediaFileName(url, info.Format),
		FileData:    data,
		Format:      info.Format,
		Width:       info.Width,
		Height:      info.Height,
		CaptionText: caption,
		CaptionEntities: []Entity{{
			Type:   EntityLink,
			Offset: 0,
			Length: UTF16Len(caption),
			URL:    caption,
		}},
		ContentTrace: trace,
	}, nil
}

// mediaFileName 取 URL 路径的最后一段，扩展名按探测到的格式修正
func mediaFileName(rawURL string, format string) string {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	if strings.EqualFold(path.Ext(base), ext) || (format == "jpeg" && strings.EqualFold(path.Ext(base), ".jpeg")) {
		return base
	}
	return strings.TrimSuffix(base, path.Ext(base)) + ext
}
