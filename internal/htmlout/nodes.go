package htmlout

import (
	"github.com/yuin/goldmark/ast"
)

// KindEmoji is the NodeKind of Emoji.
var KindEmoji = ast.NewNodeKind("Emoji")

// Emoji 单个 emoji 字形，渲染为带样式类的 span
type Emoji struct {
	ast.BaseInline
	Glyph []byte
}

// Kind implements ast.Node.Kind.
func (n *Emoji) Kind() ast.NodeKind {
	return KindEmoji
}

// Dump implements ast.Node.Dump.
func (n *Emoji) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Glyph": string(n.Glyph)}, nil)
}

// NewEmoji returns a new Emoji node.
func NewEmoji(glyph string) *Emoji {
	return &Emoji{Glyph: []byte(glyph)}
}

// KindVideoEmbed is the NodeKind of VideoEmbed.
var KindVideoEmbed = ast.NewNodeKind("VideoEmbed")

// VideoEmbed 可嵌入的视频播放器块
type VideoEmbed struct {
	ast.BaseBlock
	VideoID  string
	EmbedURL []byte
}

// Kind implements ast.Node.Kind.
func (n *VideoEmbed) Kind() ast.NodeKind {
	return KindVideoEmbed
}

// IsRaw implements ast.Node.IsRaw.
func (n *VideoEmbed) IsRaw() bool {
	return true
}

// Dump implements ast.Node.Dump.
func (n *VideoEmbed) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"VideoID":  n.VideoID,
		"EmbedURL": string(n.EmbedURL),
	}, nil)
}

// NewVideoEmbed returns a new VideoEmbed node.
func NewVideoEmbed(id string, embedURL string) *VideoEmbed {
	return &VideoEmbed{VideoID: id, EmbedURL: []byte(embedURL)}
}

// KindUnderline is the NodeKind of Underline.
var KindUnderline = ast.NewNodeKind("Underline")

// Underline 下划线文本，渲染为 <u>
type Underline struct {
	ast.BaseInline
}

// Kind implements ast.Node.Kind.
func (n *Underline) Kind() ast.NodeKind {
	return KindUnderline
}

// Dump implements ast.Node.Dump.
func (n *Underline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// NewUnderline returns a new Underline node.
func NewUnderline() *Underline {
	return &Underline{}
}
