package editor

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/riverfjs/mdlite-go/internal/types"
)

func rng(p1, o1, p2, o2 int) Range {
	return Range{Start: Position{p1, o1}, End: Position{p2, o2}}
}

// TestFromText 测试按行建段与方向检测
func TestFromText(t *testing.T) {
	d := FromText("hello\r\nשלום\n")
	if len(d.Paragraphs) != 3 {
		t.Fatalf("got %d paragraphs", len(d.Paragraphs))
	}
	if d.Paragraphs[0].Direction != types.LTR || d.Paragraphs[0].Align != AlignLeft {
		t.Errorf("p0 = %+v", d.Paragraphs[0])
	}
	if d.Paragraphs[1].Direction != types.RTL || d.Paragraphs[1].Align != AlignRight {
		t.Errorf("p1 = %+v", d.Paragraphs[1])
	}
	if d.Paragraphs[2].Runs != nil {
		t.Errorf("empty line should have no runs: %+v", d.Paragraphs[2])
	}
	if d.Text() != "hello\nשלום\n" {
		t.Errorf("Text() = %q", d.Text())
	}
}

// TestToggleBold 部分加粗后整体切换
func TestToggleBold(t *testing.T) {
	d := FromText("hello world")
	d1, err := ToggleBold(d, rng(0, 0, 0, 5))
	if err != nil {
		t.Fatal(err)
	}
	want := []Run{{Text: "hello", Style: Style{Bold: true}}, {Text: " world"}}
	if !reflect.DeepEqual(d1.Paragraphs[0].Runs, want) {
		t.Errorf("runs = %+v", d1.Paragraphs[0].Runs)
	}
	// 原文档不变
	if len(d.Paragraphs[0].Runs) != 1 || d.Paragraphs[0].Runs[0].Style.Bold {
		t.Errorf("input mutated: %+v", d.Paragraphs[0].Runs)
	}

	// 区间内部分是粗体 -> 全部加粗
	d2, _ := ToggleBold(d1, rng(0, 3, 0, 11))
	if got := d2.Paragraphs[0].Runs; len(got) != 1 || !got[0].Style.Bold {
		t.Errorf("runs = %+v", got)
	}

	// 区间内全部是粗体 -> 取消
	d3, _ := ToggleBold(d2, rng(0, 0, 0, 11))
	if got := d3.Paragraphs[0].Runs; len(got) != 1 || got[0].Style.Bold {
		t.Errorf("runs = %+v", got)
	}
}

// TestToggle_AcrossParagraphs 跨段切换样式
func TestToggle_AcrossParagraphs(t *testing.T) {
	d := FromText("abc\ndef")
	d, err := ToggleItalic(d, rng(0, 1, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Paragraphs[0].Runs; !reflect.DeepEqual(got, []Run{{Text: "a"}, {Text: "bc", Style: Style{Italic: true}}}) {
		t.Errorf("p0 = %+v", got)
	}
	if got := d.Paragraphs[1].Runs; !reflect.DeepEqual(got, []Run{{Text: "de", Style: Style{Italic: true}}, {Text: "f"}}) {
		t.Errorf("p1 = %+v", got)
	}

	d, _ = ToggleUnderline(d, rng(0, 0, 0, 3))
	if !d.Paragraphs[0].Runs[1].Style.Underline || !d.Paragraphs[0].Runs[1].Style.Italic {
		t.Errorf("styles should combine: %+v", d.Paragraphs[0].Runs)
	}
}

// TestSetAlignmentAndDirection 测试对齐与方向
func TestSetAlignmentAndDirection(t *testing.T) {
	d := FromText("a\nb\nc")
	d, err := SetAlignment(d, 1, 2, AlignCenter)
	if err != nil {
		t.Fatal(err)
	}
	if d.Paragraphs[0].Align != AlignLeft || d.Paragraphs[1].Align != AlignCenter || d.Paragraphs[2].Align != AlignCenter {
		t.Errorf("aligns = %v %v %v", d.Paragraphs[0].Align, d.Paragraphs[1].Align, d.Paragraphs[2].Align)
	}

	d, err = SetDirection(d, 0, 2, types.RTL)
	if err != nil {
		t.Fatal(err)
	}
	if d.Paragraphs[0].Align != AlignRight {
		t.Errorf("start-aligned paragraph should flip: %v", d.Paragraphs[0].Align)
	}
	if d.Paragraphs[1].Align != AlignCenter {
		t.Errorf("centered paragraph should stay centered: %v", d.Paragraphs[1].Align)
	}
	for _, p := range d.Paragraphs {
		if p.Direction != types.RTL {
			t.Errorf("direction = %v", p.Direction)
		}
	}

	if _, err := SetAlignment(d, 0, 0, Alignment("diagonal")); err == nil {
		t.Error("unknown alignment should fail")
	}
	if _, err := SetDirection(d, 2, 5, types.LTR); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v", err)
	}
}

// TestInsertText 插入文本沿用前一字符样式
func TestInsertText(t *testing.T) {
	d, _ := ToggleBold(FromText("ab"), rng(0, 0, 0, 1))
	d, err := InsertText(d, Position{0, 1}, "XY")
	if err != nil {
		t.Fatal(err)
	}
	want := []Run{{Text: "aXY", Style: Style{Bold: true}}, {Text: "b"}}
	if !reflect.DeepEqual(d.Paragraphs[0].Runs, want) {
		t.Errorf("runs = %+v", d.Paragraphs[0].Runs)
	}
}

// TestInsertText_SplitsParagraph 插入换行拆分段落
func TestInsertText_SplitsParagraph(t *testing.T) {
	d := FromText("hello world\nend")
	d, err := InsertText(d, Position{0, 5}, "!\nnew ")
	if err != nil {
		t.Fatal(err)
	}
	if d.Text() != "hello!\nnew  world\nend" {
		t.Errorf("Text() = %q", d.Text())
	}
	if len(d.Paragraphs) != 3 {
		t.Errorf("got %d paragraphs", len(d.Paragraphs))
	}
}

// TestInsertText_EmptyParagraph 空段落插入
func TestInsertText_EmptyParagraph(t *testing.T) {
	d, err := InsertText(FromText(""), Position{0, 0}, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if d.Text() != "hi" {
		t.Errorf("Text() = %q", d.Text())
	}
	if _, err := InsertText(d, Position{0, 9}, "x"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v", err)
	}
}

// TestDeleteRange 测试删除与跨段合并
func TestDeleteRange(t *testing.T) {
	d := FromText("hello\nbig\nworld")
	d1, err := DeleteRange(d, rng(0, 2, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if d1.Text() != "held" || len(d1.Paragraphs) != 1 {
		t.Errorf("Text() = %q, paragraphs = %d", d1.Text(), len(d1.Paragraphs))
	}

	d2, _ := DeleteRange(d, rng(1, 0, 1, 3))
	if d2.Text() != "hello\n\nworld" {
		t.Errorf("Text() = %q", d2.Text())
	}

	if _, err := DeleteRange(d, rng(1, 2, 0, 1)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range err = %v", err)
	}
}

// TestMarkdown 导出为标记文本
func TestMarkdown(t *testing.T) {
	d := FromText("make it bold\n\nand tilted")
	d, _ = ToggleBold(d, rng(0, 8, 0, 12))
	d, _ = ToggleItalic(d, rng(2, 4, 2, 10))
	got := d.Markdown()
	want := "make it **bold**\n\nand tilted"
	if got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

// TestMarkdown_OverlappingStyles 粗体与斜体交叠时粗体保持连续
func TestMarkdown_OverlappingStyles(t *testing.T) {
	d := FromText("hello world")
	d, _ = ToggleBold(d, rng(0, 0, 0, 5))
	d, _ = ToggleItalic(d, rng(0, 3, 0, 8))
	d, _ = ToggleUnderline(d, rng(0, 1, 0, 2))
	if len(d.Paragraphs[0].Runs) < 4 {
		t.Fatalf("expected split runs, got %+v", d.Paragraphs[0].Runs)
	}
	if got, want := d.Markdown(), "**hello** world"; got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

// TestMarshalRoundTrip JSON 序列化后可恢复
func TestMarshalRoundTrip(t *testing.T) {
	d, _ := ToggleBold(FromText("مرحبا world"), rng(0, 0, 0, 5))
	data, err := d.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"direction":"rtl"`) {
		t.Errorf("json = %s", data)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, d) {
		t.Errorf("round trip = %+v, want %+v", back, d)
	}

	if _, err := Unmarshal([]byte(`{"paragraphs":[{"direction":"up"}]}`)); err == nil {
		t.Error("bad direction should fail")
	}
}
