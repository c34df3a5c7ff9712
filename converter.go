package mdlite

import (
	"github.com/riverfjs/mdlite-go/internal/converter"
	"github.com/riverfjs/mdlite-go/internal/parser"
	"github.com/riverfjs/mdlite-go/internal/util"
	"github.com/riverfjs/mdlite-go/internal/youtube"
)

// Convert 将输入文本解析为 Document
//
// 参数:
//   - input: 原始文本，可包含真实换行或字面量 `\n`
//   - config: 渲染配置，如为 nil 则使用默认配置
func Convert(input string, config *RenderConfig) *Document {
	if config == nil {
		config = DefaultConfig()
	}
	return parser.Parse(input, config)
}

// FormatInline 将一段文本格式化为行内片段
//
// 聊天消息、表格单元格和导出字段共用这一个实现。
func FormatInline(text string) []Span {
	return converter.FormatInline(text)
}

// SegmentEmoji 将纯文本拆分为文本片段和单个 emoji 片段
func SegmentEmoji(text string) []Span {
	return converter.SegmentEmoji(text)
}

// DetectScript 检测文本中出现的主要文字（存在即判定，不统计多数）
func DetectScript(text string) Script {
	return util.DetectScript(text)
}

// DetectDirection 检测文本书写方向
func DetectDirection(text string) Direction {
	return util.DetectDirection(text)
}

// YouTubeEmbedURL 为 YouTube 链接构建嵌入播放器 URL；无法提取视频 id 时返回 false
func YouTubeEmbedURL(raw string) (string, bool) {
	return youtube.EmbedURL(raw, DefaultConfig().EmbedBaseURL)
}

// PlainText 返回片段的显示文本
func PlainText(spans []Span) string {
	return converter.JoinText(spans)
}

// SourceText 返回片段覆盖的原始文本；对 FormatInline 的结果等于输入
func SourceText(spans []Span) string {
	return converter.JoinRaw(spans)
}
