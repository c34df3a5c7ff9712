package htmlout

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// nodeRenderer renders the custom Emoji, VideoEmbed and Underline nodes.
type nodeRenderer struct {
	emojiClass string
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEmoji, r.renderEmoji)
	reg.Register(KindVideoEmbed, r.renderVideoEmbed)
	reg.Register(KindUnderline, r.renderUnderline)
}

func (r *nodeRenderer) renderUnderline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<u>")
	} else {
		_, _ = w.WriteString("</u>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderEmoji(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Emoji)
	_, _ = w.WriteString(`<span class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.emojiClass)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Glyph))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderVideoEmbed(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*VideoEmbed)
	_, _ = w.WriteString(`<div class="video-embed"`)
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.GlobalAttributeFilter)
	}
	_, _ = w.WriteString(`><iframe src="`)
	if !html.IsDangerousURL(n.EmbedURL) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.EmbedURL, true)))
	}
	_, _ = w.WriteString(`" title="YouTube video player" frameborder="0"` +
		` allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"` +
		` allowfullscreen></iframe></div>` + "\n")
	return ast.WalkSkipChildren, nil
}
