package converter

import (
	"regexp"

	"github.com/riverfjs/mdlite-go/internal/types"
)

// inlineRe 单次扫描的组合模式，同一位置按 粗体 > 链接 > 行内代码 的顺序尝试
var inlineRe = regexp.MustCompile("\\*\\*(.+?)\\*\\*" +
	`|\[([^\]]+)\]\(([^)\s]+)\)` +
	"|`([^`]+)`")

// FindSegments 返回文本中所有不重叠的行内匹配，按出现顺序排列
func FindSegments(text string) []Segment {
	matches := inlineRe.FindAllStringSubmatchIndex(text, -1)
	segments := make([]Segment, 0, len(matches))
	for _, m := range matches {
		seg := Segment{Start: m[0], End: m[1]}
		switch {
		case m[2] >= 0:
			seg.Kind = types.SpanBold
			seg.Text = text[m[2]:m[3]]
		case m[4] >= 0:
			seg.Kind = types.SpanLink
			seg.Text = text[m[4]:m[5]]
			seg.URL = text[m[6]:m[7]]
		default:
			seg.Kind = types.SpanCode
			seg.Text = text[m[8]:m[9]]
		}
		segments = append(segments, seg)
	}
	return segments
}

// FormatInline 将文本从左到右扫描为带类型的片段
//
// 匹配不嵌套：粗体和链接内部不再识别其他语法，但仍做 emoji 拆分；
// 行内代码保持原样。所有片段的 Raw 依次拼接等于输入文本。
func FormatInline(text string) []types.Span {
	spans := make([]types.Span, 0)
	cursor := 0
	for _, seg := range FindSegments(text) {
		if seg.Start > cursor {
			spans = append(spans, SegmentEmoji(text[cursor:seg.Start])...)
		}
		raw := text[seg.Start:seg.End]
		switch seg.Kind {
		case types.SpanBold:
			spans = append(spans, types.Span{
				Kind:     types.SpanBold,
				Raw:      raw,
				Text:     seg.Text,
				Children: SegmentEmoji(seg.Text),
			})
		case types.SpanLink:
			spans = append(spans, types.Span{
				Kind:     types.SpanLink,
				Raw:      raw,
				Text:     seg.Text,
				URL:      seg.URL,
				Children: SegmentEmoji(seg.Text),
			})
		case types.SpanCode:
			spans = append(spans, types.Span{
				Kind: types.SpanCode,
				Raw:  raw,
				Text: seg.Text,
			})
		}
		cursor = seg.End
	}
	if cursor < len(text) {
		spans = append(spans, SegmentEmoji(text[cursor:])...)
	}
	return spans
}

// JoinRaw 拼接片段的原始文本
func JoinRaw(spans []types.Span) string {
	total := 0
	for _, s := range spans {
		total += len(s.Raw)
	}
	buf := make([]byte, 0, total)
	for _, s := range spans {
		buf = append(buf, s.Raw...)
	}
	return string(buf)
}

// JoinText 拼接片段的显示文本
func JoinText(spans []types.Span) string {
	var buf []byte
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
