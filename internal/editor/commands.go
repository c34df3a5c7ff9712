package editor

import (
	"strings"

	"github.com/riverfjs/mdlite-go/internal/types"
)

func (d Doc) checkPosition(p Position) error {
	if p.Paragraph < 0 || p.Paragraph >= len(d.Paragraphs) {
		return ErrInvalidRange
	}
	if p.Offset < 0 || p.Offset > d.Paragraphs[p.Paragraph].Len() {
		return ErrInvalidRange
	}
	return nil
}

func (d Doc) checkRange(r Range) error {
	if err := d.checkPosition(r.Start); err != nil {
		return err
	}
	if err := d.checkPosition(r.End); err != nil {
		return err
	}
	if before(r.End, r.Start) {
		return ErrInvalidRange
	}
	return nil
}

func before(a, b Position) bool {
	return a.Paragraph < b.Paragraph || (a.Paragraph == b.Paragraph && a.Offset < b.Offset)
}

// spanIn 返回区间在第 i 段内覆盖的 [from, to)
func spanIn(r Range, i int, length int) (int, int) {
	from, to := 0, length
	if i == r.Start.Paragraph {
		from = r.Start.Offset
	}
	if i == r.End.Paragraph {
		to = r.End.Offset
	}
	return from, to
}

// toggle 区间内全部字符已有该样式时移除，否则全部加上
func toggle(d Doc, r Range, get func(Style) bool, set func(*Style, bool)) (Doc, error) {
	if err := d.checkRange(r); err != nil {
		return Doc{}, err
	}
	out := d.Clone()
	exploded := make(map[int][]cell)
	all := true
	for i := r.Start.Paragraph; i <= r.End.Paragraph; i++ {
		cells := explode(out.Paragraphs[i])
		from, to := spanIn(r, i, len(cells))
		for _, c := range cells[from:to] {
			if !get(c.s) {
				all = false
			}
		}
		exploded[i] = cells
	}
	for i, cells := range exploded {
		from, to := spanIn(r, i, len(cells))
		for j := from; j < to; j++ {
			set(&cells[j].s, !all)
		}
		out.Paragraphs[i].Runs = implode(cells)
	}
	return out, nil
}

// ToggleBold 切换区间内的粗体
func ToggleBold(d Doc, r Range) (Doc, error) {
	return toggle(d, r,
		func(s Style) bool { return s.Bold },
		func(s *Style, v bool) { s.Bold = v })
}

// ToggleItalic 切换区间内的斜体
func ToggleItalic(d Doc, r Range) (Doc, error) {
	return toggle(d, r,
		func(s Style) bool { return s.Italic },
		func(s *Style, v bool) { s.Italic = v })
}

// ToggleUnderline 切换区间内的下划线
func ToggleUnderline(d Doc, r Range) (Doc, error) {
	return toggle(d, r,
		func(s Style) bool { return s.Underline },
		func(s *Style, v bool) { s.Underline = v })
}

func checkParagraphs(d Doc, first, last int) error {
	if first < 0 || last >= len(d.Paragraphs) || first > last {
		return ErrInvalidRange
	}
	return nil
}

// SetAlignment 设置段落 [first, last] 的对齐方式
func SetAlignment(d Doc, first, last int, align Alignment) (Doc, error) {
	if err := checkParagraphs(d, first, last); err != nil {
		return Doc{}, err
	}
	if !align.Valid() {
		return Doc{}, ErrInvalidRange
	}
	out := d.Clone()
	for i := first; i <= last; i++ {
		out.Paragraphs[i].Align = align
	}
	return out, nil
}

// SetDirection 设置段落 [first, last] 的书写方向
//
// 对齐方式仍为默认的起始侧时随方向一起翻转；显式设置过的居中/两端对齐保持不变。
func SetDirection(d Doc, first, last int, dir types.Direction) (Doc, error) {
	if err := checkParagraphs(d, first, last); err != nil {
		return Doc{}, err
	}
	out := d.Clone()
	for i := first; i <= last; i++ {
		p := &out.Paragraphs[i]
		if p.Direction != dir {
			switch {
			case dir == types.RTL && p.Align == AlignLeft:
				p.Align = AlignRight
			case dir == types.LTR && p.Align == AlignRight:
				p.Align = AlignLeft
			}
		}
		p.Direction = dir
	}
	return out, nil
}

// InsertText 在 pos 处插入文本
//
// 插入的字符沿用前一个字符的样式（段首沿用后一个字符）；
// 文本中的换行会拆分段落，新段落继承当前段落的对齐与方向。
func InsertText(d Doc, pos Position, text string) (Doc, error) {
	if err := d.checkPosition(pos); err != nil {
		return Doc{}, err
	}
	out := d.Clone()
	para := out.Paragraphs[pos.Paragraph]
	cells := explode(para)

	var style Style
	switch {
	case pos.Offset > 0:
		style = cells[pos.Offset-1].s
	case len(cells) > 0:
		style = cells[0].s
	}

	head := append([]cell(nil), cells[:pos.Offset]...)
	tail := append([]cell(nil), cells[pos.Offset:]...)

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	newParas := make([]Paragraph, 0, len(lines))
	current := head
	for i, line := range lines {
		for _, r := range line {
			current = append(current, cell{r: r, s: style})
		}
		if i == len(lines)-1 {
			current = append(current, tail...)
		}
		newParas = append(newParas, Paragraph{
			Runs:      implode(current),
			Align:     para.Align,
			Direction: para.Direction,
		})
		current = nil
	}

	paras := make([]Paragraph, 0, len(out.Paragraphs)+len(newParas)-1)
	paras = append(paras, out.Paragraphs[:pos.Paragraph]...)
	paras = append(paras, newParas...)
	paras = append(paras, out.Paragraphs[pos.Paragraph+1:]...)
	out.Paragraphs = paras
	return out, nil
}

// DeleteRange 删除区间内的文本，跨段删除时合并首尾段落
func DeleteRange(d Doc, r Range) (Doc, error) {
	if err := d.checkRange(r); err != nil {
		return Doc{}, err
	}
	out := d.Clone()
	first := out.Paragraphs[r.Start.Paragraph]
	last := out.Paragraphs[r.End.Paragraph]
	cells := append([]cell(nil), explode(first)[:r.Start.Offset]...)
	cells = append(cells, explode(last)[r.End.Offset:]...)
	first.Runs = implode(cells)

	paras := make([]Paragraph, 0, len(out.Paragraphs)-(r.End.Paragraph-r.Start.Paragraph))
	paras = append(paras, out.Paragraphs[:r.Start.Paragraph]...)
	paras = append(paras, first)
	paras = append(paras, out.Paragraphs[r.End.Paragraph+1:]...)
	out.Paragraphs = paras
	return out, nil
}
