package converter

import "github.com/riverfjs/mdlite-go/internal/types"

// Segment 记录一次行内匹配在块文本中的位置（字节偏移）
type Segment struct {
	Kind  types.SpanKind
	Start int
	End   int
	Text  string // 粗体内文 / 链接文字 / 代码内容
	URL   string
}
