// Package htmlout renders a parsed Document as HTML through the goldmark renderer.
package htmlout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/mdlite-go/internal/buffer"
	"github.com/riverfjs/mdlite-go/internal/types"
)

var lineBreak = []byte("<br>\n")

// New 创建带表格扩展和自定义节点渲染器的 goldmark 实例
func New(config *types.RenderConfig) goldmark.Markdown {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	return goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&nodeRenderer{emojiClass: config.EmojiClass}, 500),
			),
		),
	)
}

// Build 将 Document 转换为 goldmark AST
//
// 返回的 source 是所有文本节点指向的字节缓冲，渲染时必须一并传入。
func Build(doc *types.Document, config *types.RenderConfig) (ast.Node, []byte) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	b := &builder{buf: buffer.New(), config: config}
	root := ast.NewDocument()
	for i := range doc.Blocks {
		if node := b.block(&doc.Blocks[i]); node != nil {
			root.AppendChild(root, node)
		}
	}
	return root, b.buf.Bytes()
}

// Render 渲染整个 Document
func Render(doc *types.Document, config *types.RenderConfig) (string, error) {
	root, source := Build(doc, config)
	var out bytes.Buffer
	if err := New(config).Renderer().Render(&out, source, root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return out.String(), nil
}

// RenderInline 渲染一组行内片段（不带块级包裹），用于表格单元格和导出字段
func RenderInline(spans []types.Span, config *types.RenderConfig) (string, error) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	b := &builder{buf: buffer.New(), config: config}
	root := ast.NewDocument()
	block := ast.NewTextBlock()
	b.inlines(block, spans)
	root.AppendChild(root, block)

	var out bytes.Buffer
	if err := New(config).Renderer().Render(&out, b.buf.Bytes(), root); err != nil {
		return "", fmt.Errorf("render inline html: %w", err)
	}
	return out.String(), nil
}

// RenderLinks 渲染 URL 列表为 <ul>，每项是以 URL 为文字的链接
//
// 与正文链接走同一个渲染器，javascript: 等危险协议输出空 href。
func RenderLinks(links []string, class string, config *types.RenderConfig) (string, error) {
	if len(links) == 0 {
		return "", nil
	}
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	b := &builder{buf: buffer.New(), config: config}
	root := ast.NewDocument()
	list := ast.NewList('-')
	list.IsTight = true
	if class != "" {
		list.SetAttributeString("class", []byte(class))
	}
	for _, l := range links {
		item := ast.NewListItem(2)
		block := ast.NewTextBlock()
		b.inlines(block, []types.Span{{
			Kind: types.SpanLink, Raw: l, Text: l, URL: l,
			Children: []types.Span{{Kind: types.SpanText, Raw: l, Text: l}},
		}})
		item.AppendChild(item, block)
		list.AppendChild(list, item)
	}
	root.AppendChild(root, list)

	var out bytes.Buffer
	if err := New(config).Renderer().Render(&out, b.buf.Bytes(), root); err != nil {
		return "", fmt.Errorf("render links: %w", err)
	}
	return out.String(), nil
}

type builder struct {
	buf    *buffer.TextBuffer
	config *types.RenderConfig
}

func (b *builder) block(block *types.Block) ast.Node {
	var node ast.Node
	switch block.Kind {
	case types.BlockHeading:
		h := ast.NewHeading(block.Level)
		b.inlines(h, block.Spans)
		node = h
	case types.BlockYouTube:
		node = NewVideoEmbed(block.Video.ID, block.Video.EmbedURL)
	case types.BlockImage:
		p := ast.NewParagraph()
		link := ast.NewLink()
		link.Destination = []byte(block.ImageURL)
		link.AppendChild(link, ast.NewString([]byte("image")))
		img := ast.NewImage(link)
		img.SetAttributeString("loading", []byte("lazy"))
		p.AppendChild(p, img)
		node = p
	case types.BlockTable:
		node = b.table(block.Table)
	default:
		p := ast.NewParagraph()
		b.inlines(p, block.Spans)
		node = p
	}
	node.SetAttributeString("dir", []byte(block.Direction.String()))
	return node
}

func (b *builder) table(table *types.Table) ast.Node {
	t := east.NewTable()
	header := east.NewTableHeader(east.NewTableRow(nil))
	for _, cell := range table.Header {
		header.AppendChild(header, b.cell(cell))
	}
	t.AppendChild(t, header)
	for _, row := range table.Rows {
		r := east.NewTableRow(nil)
		for _, cell := range row {
			r.AppendChild(r, b.cell(cell))
		}
		t.AppendChild(t, r)
	}
	return t
}

func (b *builder) cell(cell types.Cell) ast.Node {
	c := east.NewTableCell()
	b.inlines(c, cell.Spans)
	return c
}

// inlines 将片段追加为 parent 的行内子节点
func (b *builder) inlines(parent ast.Node, spans []types.Span) {
	for _, span := range spans {
		switch span.Kind {
		case types.SpanBold:
			em := ast.NewEmphasis(2)
			b.inlines(em, span.Children)
			parent.AppendChild(parent, em)
		case types.SpanLink:
			link := ast.NewLink()
			link.Destination = []byte(span.URL)
			if b.config.LinkTarget != "" {
				link.SetAttributeString("target", []byte(b.config.LinkTarget))
				link.SetAttributeString("rel", []byte("noopener noreferrer"))
			}
			b.inlines(link, span.Children)
			parent.AppendChild(parent, link)
		case types.SpanCode:
			code := ast.NewCodeSpan()
			code.AppendChild(code, ast.NewRawTextSegment(b.buf.Write(span.Text)))
			parent.AppendChild(parent, code)
		case types.SpanEmoji:
			parent.AppendChild(parent, NewEmoji(span.Text))
		default:
			b.text(parent, span.Text)
		}
	}
}

// text 写入纯文本，换行转为 <br>
func (b *builder) text(parent ast.Node, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			br := ast.NewString(lineBreak)
			br.SetCode(true)
			parent.AppendChild(parent, br)
		}
		if line != "" {
			parent.AppendChild(parent, ast.NewRawTextSegment(b.buf.Write(line)))
		}
	}
}
