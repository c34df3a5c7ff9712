package htmlout

import (
	"strings"
	"testing"

	"github.com/riverfjs/mdlite-go/internal/editor"
	"github.com/riverfjs/mdlite-go/internal/types"
)

func span(p, from, to int) editor.Range {
	return editor.Range{
		Start: editor.Position{Paragraph: p, Offset: from},
		End:   editor.Position{Paragraph: p, Offset: to},
	}
}

func mustEdit(t *testing.T, d editor.Doc, err error) editor.Doc {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// TestRenderEditor 交叠样式正确嵌套，段落保留各自的方向与对齐
func TestRenderEditor(t *testing.T) {
	d := editor.FromText("hello world\n\nsecond")
	var err error
	d, err = editor.ToggleBold(d, span(0, 0, 5))
	d = mustEdit(t, d, err)
	d, err = editor.ToggleItalic(d, span(0, 3, 8))
	d = mustEdit(t, d, err)
	d, err = editor.SetAlignment(d, 2, 2, editor.AlignCenter)
	d = mustEdit(t, d, err)
	d, err = editor.SetDirection(d, 2, 2, types.RTL)
	d = mustEdit(t, d, err)

	got, err := RenderEditor(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := `<p dir="ltr" style="text-align:left"><strong>hel<em>lo</em></strong><em> wo</em>rld</p>` + "\n" +
		`<p dir="rtl" style="text-align:center">second</p>` + "\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// TestRenderEditor_UnderlineAndEscape 下划线输出 <u>，文本中的 HTML 被转义
func TestRenderEditor_UnderlineAndEscape(t *testing.T) {
	d := editor.FromText("<b>ok</b>")
	var err error
	d, err = editor.ToggleUnderline(d, span(0, 0, 3))
	d = mustEdit(t, d, err)
	got, err := RenderEditor(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<u>&lt;b&gt;</u>ok&lt;/b&gt;") {
		t.Errorf("got %q", got)
	}
}
