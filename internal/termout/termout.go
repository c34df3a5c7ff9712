// Package termout renders a parsed Document for a terminal.
package termout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riverfjs/mdlite-go/internal/converter"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// Renderer 终端渲染器
type Renderer struct {
	// Width 是终端宽度，RTL 块向右对齐到该宽度；0 表示不对齐
	Width   int
	Styles  *Styles
	Symbols *types.Symbol
}

// New creates a Renderer with the default styles.
func New(width int, config *types.RenderConfig) *Renderer {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	symbols := config.MarkdownSymbol
	if symbols == nil {
		symbols = types.DefaultSymbol()
	}
	return &Renderer{
		Width:   width,
		Styles:  DefaultStyles(),
		Symbols: symbols,
	}
}

// Render 渲染整个文档，块之间以空行分隔
func (r *Renderer) Render(doc *types.Document) string {
	parts := make([]string, 0, len(doc.Blocks))
	for i := range doc.Blocks {
		block := &doc.Blocks[i]
		text := r.block(block)
		if block.Direction == types.RTL && r.Width > 0 {
			text = lipgloss.PlaceHorizontal(r.Width, lipgloss.Right, text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) block(block *types.Block) string {
	switch block.Kind {
	case types.BlockHeading:
		text := r.styleLines(r.Styles.Heading, r.Inline(block.Spans))
		if sym := r.Symbols.Heading(block.Level); sym != "" {
			return r.Styles.Symbol.Render(sym) + " " + text
		}
		return text
	case types.BlockYouTube:
		return r.Styles.Symbol.Render(r.Symbols.Video) + " " + r.Styles.Link.Render(block.Video.URL)
	case types.BlockImage:
		return r.Styles.Symbol.Render(r.Symbols.Image) + " " + r.Styles.Link.Render(block.ImageURL)
	case types.BlockTable:
		lines := strings.Split(FormatTable(tableRows(block.Table)), "\n")
		lines[0] = r.Styles.Header.Render(lines[0])
		return strings.Join(lines, "\n")
	default:
		return r.Inline(block.Spans)
	}
}

// Inline 渲染行内片段；链接显示为 "文字 (URL)"
func (r *Renderer) Inline(spans []types.Span) string {
	var b strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case types.SpanBold:
			b.WriteString(r.styleLines(r.Styles.Bold, r.Inline(span.Children)))
		case types.SpanLink:
			b.WriteString(r.Styles.Link.Render(r.Inline(span.Children)))
			if span.URL != span.Text {
				b.WriteString(" ")
				b.WriteString(r.Styles.URL.Render("(" + span.URL + ")"))
			}
		case types.SpanCode:
			b.WriteString(r.styleLines(r.Styles.Code, span.Text))
		case types.SpanEmoji:
			b.WriteString(r.Styles.Emoji.Render(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// styleLines 逐行应用样式，避免多行渲染时被补齐为块
func (r *Renderer) styleLines(style lipgloss.Style, s string) string {
	if !strings.Contains(s, "\n") {
		return style.Render(s)
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

func tableRows(table *types.Table) [][]string {
	rows := make([][]string, 0, len(table.Rows)+1)
	rows = append(rows, cellTexts(table.Header))
	for _, row := range table.Rows {
		rows = append(rows, cellTexts(row))
	}
	return rows
}

func cellTexts(cells []types.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = converter.JoinText(c.Spans)
	}
	return out
}
