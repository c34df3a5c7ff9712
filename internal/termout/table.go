package termout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTable 将表格行排版为等宽对齐的纯文本
//
// 第一行视为表头，其后插入分隔线。列宽按终端显示宽度计算，
// emoji 和 CJK 字符占两列。
func FormatTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	colWidths := make([]int, numCols)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for rowIdx, row := range rows {
		cells := make([]string, numCols)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = runewidth.FillRight(cell, colWidths[i])
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " | "), " "))

		if rowIdx == 0 && len(rows) > 1 {
			sepCells := make([]string, numCols)
			for i := 0; i < numCols; i++ {
				sepCells[i] = strings.Repeat("-", colWidths[i])
			}
			lines = append(lines, strings.Join(sepCells, "-+-"))
		}
	}

	return strings.Join(lines, "\n")
}
