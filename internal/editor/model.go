// Package editor is a serialisable rich-text document model.
//
// Commands are pure: each takes a Doc and returns a new Doc, leaving the input
// untouched, so editing history is just a slice of values.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/util"
)

// ErrInvalidRange is returned when a position lies outside the document.
var ErrInvalidRange = errors.New("editor: position out of range")

// Alignment 段落对齐方式
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Valid reports whether a is a known alignment.
func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// Style 行内样式
type Style struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
}

// Run 同一样式的一段连续文本
type Run struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Paragraph 一行文本，由若干 Run 组成
type Paragraph struct {
	Runs      []Run           `json:"runs"`
	Align     Alignment       `json:"align"`
	Direction types.Direction `json:"direction"`
}

// Text returns the unstyled text of the paragraph.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the paragraph length in runes.
func (p Paragraph) Len() int {
	n := 0
	for _, r := range p.Runs {
		n += len([]rune(r.Text))
	}
	return n
}

// Doc 文档
type Doc struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Position 文档中的位置：段落下标 + 段内 rune 偏移
type Position struct {
	Paragraph int `json:"paragraph"`
	Offset    int `json:"offset"`
}

// Range 左闭右开区间 [Start, End)
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// FromText 从纯文本创建文档，每行一个段落
//
// 每个段落单独检测书写方向，RTL 段落默认右对齐。
func FromText(text string) Doc {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	doc := Doc{Paragraphs: make([]Paragraph, 0, len(lines))}
	for _, line := range lines {
		dir := util.DetectDirection(line)
		align := AlignLeft
		if dir == types.RTL {
			align = AlignRight
		}
		p := Paragraph{Align: align, Direction: dir}
		if line != "" {
			p.Runs = []Run{{Text: line}}
		}
		doc.Paragraphs = append(doc.Paragraphs, p)
	}
	return doc
}

// Text returns the unstyled document text, one line per paragraph.
func (d Doc) Text() string {
	lines := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Clone returns a deep copy of the document.
func (d Doc) Clone() Doc {
	out := Doc{Paragraphs: make([]Paragraph, len(d.Paragraphs))}
	for i, p := range d.Paragraphs {
		runs := make([]Run, len(p.Runs))
		copy(runs, p.Runs)
		p.Runs = runs
		out.Paragraphs[i] = p
	}
	return out
}

// Marshal 序列化为 JSON
func (d Doc) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal 从 JSON 恢复文档并规范化 Run
func Unmarshal(data []byte) (Doc, error) {
	var d Doc
	if err := json.Unmarshal(data, &d); err != nil {
		return Doc{}, fmt.Errorf("decode editor doc: %w", err)
	}
	for i := range d.Paragraphs {
		d.Paragraphs[i].Runs = implode(explode(d.Paragraphs[i]))
		if !d.Paragraphs[i].Align.Valid() {
			d.Paragraphs[i].Align = AlignLeft
		}
	}
	return d, nil
}

// Markdown 导出为渲染器可识别的轻量标记
//
// 只有粗体有对应语法：相邻的粗体 Run 合并为一个 **...**，与斜体、下划线的
// 区间交叠也不会拆开。斜体和下划线只保留文字；段落的对齐与方向不进入标记，
// 需要保留时用 htmlout.RenderEditor。段落之间以空行分隔。
func (d Doc) Markdown() string {
	parts := make([]string, 0, len(d.Paragraphs))
	for _, p := range d.Paragraphs {
		var b strings.Builder
		bold := false
		for _, r := range p.Runs {
			if r.Text == "" {
				continue
			}
			if r.Style.Bold != bold {
				b.WriteString("**")
				bold = r.Style.Bold
			}
			b.WriteString(r.Text)
		}
		if bold {
			b.WriteString("**")
		}
		if b.Len() > 0 {
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, "\n\n")
}

// cell 单个字符及其样式，命令在这一粒度上操作
type cell struct {
	r rune
	s Style
}

func explode(p Paragraph) []cell {
	cells := make([]cell, 0, p.Len())
	for _, run := range p.Runs {
		for _, r := range run.Text {
			cells = append(cells, cell{r: r, s: run.Style})
		}
	}
	return cells
}

// implode 合并相邻同样式字符为 Run，不产生空 Run
func implode(cells []cell) []Run {
	var runs []Run
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && c.s != cells[i-1].s {
			runs = append(runs, Run{Text: b.String(), Style: cells[i-1].s})
			b.Reset()
		}
		b.WriteRune(c.r)
	}
	if b.Len() > 0 {
		runs = append(runs, Run{Text: b.String(), Style: cells[len(cells)-1].s})
	}
	return runs
}
