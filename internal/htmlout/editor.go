package htmlout

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/riverfjs/mdlite-go/internal/buffer"
	"github.com/riverfjs/mdlite-go/internal/editor"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// runLayers 由外到内的样式嵌套：strong > em > u
var runLayers = []struct {
	on   func(editor.Style) bool
	wrap func() ast.Node
}{
	{func(s editor.Style) bool { return s.Bold }, func() ast.Node { return ast.NewEmphasis(2) }},
	{func(s editor.Style) bool { return s.Italic }, func() ast.Node { return ast.NewEmphasis(1) }},
	{func(s editor.Style) bool { return s.Underline }, func() ast.Node { return NewUnderline() }},
}

// RenderEditor 渲染富文本编辑器文档
//
// 每个段落带自己的 dir 和 text-align，不再整体检测方向；空段落不输出。
func RenderEditor(doc editor.Doc, config *types.RenderConfig) (string, error) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	b := &builder{buf: buffer.New(), config: config}
	root := ast.NewDocument()
	for _, p := range doc.Paragraphs {
		if p.Len() == 0 {
			continue
		}
		para := ast.NewParagraph()
		para.SetAttributeString("dir", []byte(p.Direction.String()))
		para.SetAttributeString("style", []byte("text-align:"+string(p.Align)))
		b.runs(para, p.Runs, 0)
		root.AppendChild(root, para)
	}

	var out bytes.Buffer
	if err := New(config).Renderer().Render(&out, b.buf.Bytes(), root); err != nil {
		return "", fmt.Errorf("render editor html: %w", err)
	}
	return out.String(), nil
}

// runs 按 runLayers 逐层把同样式的相邻 Run 归入同一个包裹节点
func (b *builder) runs(parent ast.Node, runs []editor.Run, layer int) {
	if layer == len(runLayers) {
		for _, r := range runs {
			b.text(parent, r.Text)
		}
		return
	}
	l := runLayers[layer]
	for i := 0; i < len(runs); {
		on := l.on(runs[i].Style)
		j := i + 1
		for j < len(runs) && l.on(runs[j].Style) == on {
			j++
		}
		target := parent
		if on {
			target = l.wrap()
			parent.AppendChild(parent, target)
		}
		b.runs(target, runs[i:j], layer+1)
		i = j
	}
}
