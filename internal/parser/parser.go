package parser

import (
	"github.com/riverfjs/mdlite-go/internal/converter"
	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/util"
)

// Parse 将输入文本解析为 Document
//
// 流程：换行规范化 -> 整体方向检测 -> 按空行分块 -> 逐块分类与行内格式化。
// 方向只在整个输入上检测一次，所有块共用同一方向。
func Parse(input string, config *types.RenderConfig) *types.Document {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	text := converter.NormalizeNewlines(input, config.EscapedNewlines)
	script := util.DetectScript(text)
	dir := script.Direction()

	doc := &types.Document{
		Source:    input,
		Script:    script,
		Direction: dir,
		Blocks:    make([]types.Block, 0),
	}
	for _, raw := range converter.SplitBlocks(text) {
		for _, block := range converter.ClassifyBlock(raw, config) {
			block.Direction = dir
			doc.Blocks = append(doc.Blocks, block)
		}
	}
	return doc
}
