package types

import "fmt"

// Direction 文本书写方向
type Direction int

const (
	LTR Direction = iota
	RTL
)

// String returns "ltr" or "rtl", matching the HTML dir attribute.
func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// MarshalText encodes the direction as "ltr" or "rtl".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes "ltr" or "rtl"; empty means ltr.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ltr", "":
		*d = LTR
	case "rtl":
		*d = RTL
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// Script 是方向检测识别出的主要文字
type Script int

const (
	ScriptLatin Script = iota
	ScriptArabic
	ScriptHebrew
	ScriptPersian
)

func (s Script) String() string {
	switch s {
	case ScriptArabic:
		return "arabic"
	case ScriptHebrew:
		return "hebrew"
	case ScriptPersian:
		return "persian"
	default:
		return "latin"
	}
}

// MarshalText encodes the script name.
func (s Script) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Direction returns the text flow direction of the script.
func (s Script) Direction() Direction {
	if s == ScriptLatin {
		return LTR
	}
	return RTL
}

// SpanKind 行内片段类型
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanLink
	SpanCode
	SpanEmoji
)

func (k SpanKind) String() string {
	switch k {
	case SpanBold:
		return "bold"
	case SpanLink:
		return "link"
	case SpanCode:
		return "code"
	case SpanEmoji:
		return "emoji"
	default:
		return "text"
	}
}

// MarshalText encodes the kind name.
func (k SpanKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span 表示块内一段带类型的文本
//
// Raw 是该片段覆盖的原始子串（包含 ** [ ] ( ) ` 等标记），
// Text 是显示文本。Bold 和 Link 的 Children 只包含 SpanText / SpanEmoji。
type Span struct {
	Kind     SpanKind `json:"kind"`
	Raw      string   `json:"raw"`
	Text     string   `json:"text"`
	URL      string   `json:"url,omitempty"`
	Children []Span   `json:"children,omitempty"`
}

// BlockKind 块类型
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockYouTube
	BlockImage
	BlockTable
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockYouTube:
		return "youtube"
	case BlockImage:
		return "image"
	case BlockTable:
		return "table"
	default:
		return "paragraph"
	}
}

// MarshalText encodes the kind name.
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Video 是识别出的 YouTube 链接
type Video struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	EmbedURL string `json:"embed_url"`
}

// Cell 表格单元格
type Cell struct {
	Raw   string `json:"raw"`
	Spans []Span `json:"spans"`
}

// Table 表格块的结构化内容
type Table struct {
	Header []Cell   `json:"header"`
	Rows   [][]Cell `json:"rows"`
}

// Block 是以空行分隔的一段输入
type Block struct {
	Kind      BlockKind `json:"kind"`
	Raw       string    `json:"raw"`
	Direction Direction `json:"direction"`
	Level     int       `json:"level,omitempty"`
	Spans     []Span    `json:"spans,omitempty"`
	Video     *Video    `json:"video,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Table     *Table    `json:"table,omitempty"`
}

// Document 一次渲染调用的结果
type Document struct {
	Source    string    `json:"source"`
	Script    Script    `json:"script"`
	Direction Direction `json:"direction"`
	Blocks    []Block   `json:"blocks"`
}

// Entity 类型
const (
	EntityBold    = "bold"
	EntityLink    = "text_link"
	EntityCode    = "code"
	EntityEmoji   = "emoji"
	EntityHeading = "heading"
	EntityPre     = "pre"
	EntityImage   = "image"
	EntityVideo   = "video"
)

// Entity 表示扁平化文本中的一个样式区间（UTF-16 偏移）
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	URL    string `json:"url,omitempty"`
}

// ToDict 将 Entity 转换为 map
func (e Entity) ToDict() map[string]interface{} {
	result := map[string]interface{}{
		"type":   e.Type,
		"offset": e.Offset,
		"length": e.Length,
	}
	if e.URL != "" {
		result["url"] = e.URL
	}
	return result
}

// Symbol 定义终端输出中各元素的显示符号
type Symbol struct {
	HeadingLevel1 string
	HeadingLevel2 string
	HeadingLevel3 string
	HeadingLevel4 string
	HeadingLevel5 string
	HeadingLevel6 string
	Image         string
	Video         string
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() *Symbol {
	return &Symbol{
		HeadingLevel1: "📌",
		HeadingLevel2: "📝",
		HeadingLevel3: "📋",
		HeadingLevel4: "📄",
		HeadingLevel5: "📃",
		HeadingLevel6: "🔖",
		Image:         "🖼",
		Video:         "▶",
	}
}

// Heading returns the symbol for a heading level (1-6).
func (s *Symbol) Heading(level int) string {
	switch level {
	case 1:
		return s.HeadingLevel1
	case 2:
		return s.HeadingLevel2
	case 3:
		return s.HeadingLevel3
	case 4:
		return s.HeadingLevel4
	case 5:
		return s.HeadingLevel5
	case 6:
		return s.HeadingLevel6
	}
	return ""
}

// RenderConfig 渲染配置
type RenderConfig struct {
	MarkdownSymbol   *Symbol
	EscapedNewlines  bool
	EmbedBaseURL     string
	ThumbnailBaseURL string
	EmojiClass       string
	LinkTarget       string
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol:   DefaultSymbol(),
		EscapedNewlines:  true,
		EmbedBaseURL:     "https://www.youtube.com/embed/",
		ThumbnailBaseURL: "https://img.youtube.com/vi/",
		EmojiClass:       "emoji",
		LinkTarget:       "_blank",
	}
}
