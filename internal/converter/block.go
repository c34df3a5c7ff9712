package converter

import (
	"regexp"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/youtube"
)

const maxHeadingLevel = 6

var (
	headingRe  = regexp.MustCompile(`^(#+)[ \t]+(\S.*)$`)
	imageURLRe = regexp.MustCompile(`(?i)^https?://\S+\.(?:jpe?g|png|gif|webp|svg)(?:\?\S*)?$`)
)

// ClassifyBlock 按固定优先级对一个块分类，取第一个成功的匹配：
// 标题 > YouTube 链接 > 图片 URL > 表格 > 段落。
//
// 首行是标题而块内还有后续行时，后续行作为新块继续分类，不丢弃任何文本。
func ClassifyBlock(block string, config *types.RenderConfig) []types.Block {
	first, rest, multiline := strings.Cut(block, "\n")
	if m := headingRe.FindStringSubmatch(strings.TrimRight(first, " \t")); m != nil {
		text := strings.TrimSpace(m[2])
		out := []types.Block{{
			Kind:  types.BlockHeading,
			Raw:   first,
			Level: min(len(m[1]), maxHeadingLevel),
			Spans: FormatInline(text),
		}}
		if multiline {
			if rest = strings.TrimSpace(rest); rest != "" {
				out = append(out, ClassifyBlock(rest, config)...)
			}
		}
		return out
	}

	if youtube.IsYouTubeURL(block) {
		if video, ok := youtube.Parse(block, config.EmbedBaseURL); ok {
			return []types.Block{{Kind: types.BlockYouTube, Raw: block, Video: video}}
		}
		// 无法提取视频 id：作为普通超链接
		return []types.Block{{
			Kind: types.BlockParagraph,
			Raw:  block,
			Spans: []types.Span{{
				Kind:     types.SpanLink,
				Raw:      block,
				Text:     block,
				URL:      block,
				Children: []types.Span{textSpan(block)},
			}},
		}}
	}

	if imageURLRe.MatchString(block) {
		return []types.Block{{Kind: types.BlockImage, Raw: block, ImageURL: block}}
	}

	if table := ParseTable(block); table != nil {
		return []types.Block{{Kind: types.BlockTable, Raw: block, Table: table}}
	}

	return []types.Block{{
		Kind:  types.BlockParagraph,
		Raw:   block,
		Spans: FormatInline(block),
	}}
}
