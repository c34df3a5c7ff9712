// Package mdlite 渲染一种轻量的类 Markdown 文本
//
// 支持的语法刻意保持很小：**粗体**、[链接](url)、`行内代码`、# 标题、
// 单独成块的 YouTube 链接和图片 URL、简单管道表格，以及 emoji 拆分。
// 对阿拉伯文、希伯来文、波斯文内容自动切换为从右到左的书写方向。
//
// 主要 API：
//   - Render(): 解析为 Document（块 -> 行内片段）
//   - RenderHTML(): 输出 HTML
//   - RenderTerminal(): 输出终端文本
//   - Flatten(): 输出纯文本 + Entity 列表（UTF-16 偏移）
//   - Process(): 完整管道，按长度拆分文本并下载图片/视频封面
//
// 示例：
//
//	doc := mdlite.Render("# Hello\n\n**bold** and [link](https://example.com)")
//	html, err := mdlite.RenderHTML(input)
//
//	contents, err := mdlite.Process(ctx, input, mdlite.WithFetchMedia(true))
//	for _, content := range contents {
//	    switch c := content.(type) {
//	    case *mdlite.Text:
//	        // 文本片段
//	    case *mdlite.Photo:
//	        // 图片或视频封面
//	    }
//	}
package mdlite

import (
	"github.com/riverfjs/mdlite-go/internal/htmlout"
	"github.com/riverfjs/mdlite-go/internal/termout"
)

// Render 解析输入文本，返回块与行内片段组成的 Document
//
// 渲染不会失败：无法识别的结构一律回退为更通用的类型
// （表格 -> 段落，YouTube 嵌入 -> 普通链接）。
func Render(input string, opts ...Option) *Document {
	options := applyOptions(opts...)
	return Convert(input, options.renderConfig())
}

// RenderHTML 渲染为 HTML，每个块带 dir 属性
func RenderHTML(input string, opts ...Option) (string, error) {
	options := applyOptions(opts...)
	config := options.renderConfig()
	return htmlout.Render(Convert(input, config), config)
}

// RenderTerminal 渲染为终端文本
//
// width 为终端宽度，RTL 文本右对齐到该宽度；0 表示不对齐。
func RenderTerminal(input string, width int, opts ...Option) string {
	options := applyOptions(opts...)
	config := options.renderConfig()
	return termout.New(width, config).Render(Convert(input, config))
}
