package mdlite

import (
	"strings"

	"github.com/riverfjs/mdlite-go/internal/types"
)

// Stats 文档统计
type Stats struct {
	Blocks     int `json:"blocks"`
	Words      int `json:"words"`
	Characters int `json:"characters"` // UTF-16 code units of the flattened text
	Emoji      int `json:"emoji"`
	Links      int `json:"links"`
	Images     int `json:"images"`
	Videos     int `json:"videos"`
	Tables     int `json:"tables"`
}

// CountText 统计文档的块、词、字符和各类元素数量
//
// 字符数是扁平化文本的 UTF-16 长度，与 Entity 偏移使用同一计量。
func CountText(doc *Document) Stats {
	text, entities := Flatten(doc.Blocks)
	stats := Stats{
		Blocks:     len(doc.Blocks),
		Words:      len(strings.Fields(text)),
		Characters: UTF16Len(text),
	}
	for _, e := range entities {
		switch e.Type {
		case EntityEmoji:
			stats.Emoji++
		case EntityLink:
			stats.Links++
		}
	}
	for _, b := range doc.Blocks {
		switch b.Kind {
		case types.BlockImage:
			stats.Images++
		case types.BlockYouTube:
			stats.Videos++
		case types.BlockTable:
			stats.Tables++
		}
	}
	return stats
}
