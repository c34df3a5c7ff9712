package mdlite

import (
	"sync"

	"github.com/riverfjs/mdlite-go/internal/types"
)

// 导出类型别名
type (
	Symbol       = types.Symbol
	RenderConfig = types.RenderConfig
	Document     = types.Document
	Block        = types.Block
	BlockKind    = types.BlockKind
	Span         = types.Span
	SpanKind     = types.SpanKind
	Table        = types.Table
	Cell         = types.Cell
	Video        = types.Video
	Direction    = types.Direction
	Script       = types.Script
)

const (
	LTR = types.LTR
	RTL = types.RTL
)

const (
	SpanText  = types.SpanText
	SpanBold  = types.SpanBold
	SpanLink  = types.SpanLink
	SpanCode  = types.SpanCode
	SpanEmoji = types.SpanEmoji
)

const (
	BlockParagraph = types.BlockParagraph
	BlockHeading   = types.BlockHeading
	BlockYouTube   = types.BlockYouTube
	BlockImage     = types.BlockImage
	BlockTable     = types.BlockTable
)

const (
	ScriptLatin   = types.ScriptLatin
	ScriptArabic  = types.ScriptArabic
	ScriptHebrew  = types.ScriptHebrew
	ScriptPersian = types.ScriptPersian
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}
