package converter

import (
	"regexp"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/types"
)

var separatorRowRe = regexp.MustCompile(`^[\s|\-]+$`)

// ParseTable 解析简单管道表格
//
// 至少 3 行，第 2 行只能由 | - 空白组成且必须同时含有 | 和 -。
// 结构校验失败返回 nil，由调用方回退为段落。
func ParseTable(block string) *types.Table {
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return nil
	}
	sep := strings.TrimSpace(lines[1])
	if !separatorRowRe.MatchString(sep) || !strings.Contains(sep, "|") || !strings.Contains(sep, "-") {
		return nil
	}
	header := splitRow(lines[0])
	if len(header) == 0 {
		return nil
	}
	rows := make([][]types.Cell, 0, len(lines)-2)
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitRow(line))
	}
	return &types.Table{Header: header, Rows: rows}
}

// splitRow 按 | 切分并去除每格首尾空白；去掉首尾的空单元格
func splitRow(line string) []types.Cell {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if n := len(parts); n > 0 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	cells := make([]types.Cell, 0, len(parts))
	for _, p := range parts {
		raw := strings.TrimSpace(p)
		cells = append(cells, types.Cell{Raw: raw, Spans: FormatInline(raw)})
	}
	return cells
}
