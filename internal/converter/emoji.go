package converter

import (
	"unicode/utf8"

	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/util"
)

// SegmentEmoji 将纯文本拆分为文本片段和单个 emoji 片段
//
// 行为与按 emoji 捕获分组 split 一致：相邻 emoji 之间保留空文本片段，
// 绝不合并；只去掉开头和结尾的空文本片段。
func SegmentEmoji(text string) []types.Span {
	if text == "" {
		return nil
	}
	parts := make([]types.Span, 0, 1)
	start := 0
	for i, r := range text {
		if !util.IsEmoji(r) {
			continue
		}
		parts = append(parts, textSpan(text[start:i]))
		e := text[i : i+utf8.RuneLen(r)]
		parts = append(parts, types.Span{Kind: types.SpanEmoji, Raw: e, Text: e})
		start = i + len(e)
	}
	parts = append(parts, textSpan(text[start:]))

	if parts[0].Raw == "" {
		parts = parts[1:]
	}
	if n := len(parts); n > 0 && parts[n-1].Kind == types.SpanText && parts[n-1].Raw == "" {
		parts = parts[:n-1]
	}
	return parts
}

func textSpan(s string) types.Span {
	return types.Span{Kind: types.SpanText, Raw: s, Text: s}
}
