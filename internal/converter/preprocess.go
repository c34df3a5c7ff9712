package converter

import (
	"regexp"
	"strings"
)

var (
	// 空行（允许只含空白字符）分隔块
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
)

// NormalizeNewlines 统一换行符
//
// \r\n 和 \r 转为 \n；escaped 为 true 时，字面量的两字符序列 `\n`
// （LLM 输出和 JSON 转义中常见）也视为换行。
func NormalizeNewlines(text string, escaped bool) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if escaped {
		text = strings.ReplaceAll(text, `\n`, "\n")
	}
	return text
}

// SplitBlocks 按空行拆分为块，去除每块首尾空白，丢弃空块
func SplitBlocks(text string) []string {
	parts := blankLineRe.Split(text, -1)
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, part)
	}
	return blocks
}
