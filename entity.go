package mdlite

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/buffer"
	"github.com/riverfjs/mdlite-go/internal/termout"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// 导出类型别名
type Entity = types.Entity

const (
	EntityBold    = types.EntityBold
	EntityLink    = types.EntityLink
	EntityCode    = types.EntityCode
	EntityEmoji   = types.EntityEmoji
	EntityHeading = types.EntityHeading
	EntityPre     = types.EntityPre
	EntityImage   = types.EntityImage
	EntityVideo   = types.EntityVideo
)

// blockSeparator 扁平化时块之间的分隔
const blockSeparator = "\n\n"

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Entity offsets and lengths use UTF-16 code units, the index space of
// JavaScript strings and the DOM. Characters outside the BMP take 2 units.
func UTF16Len(text string) int {
	return buffer.UTF16Len(text)
}

// TextChunk represents a chunk of text with its entities.
type TextChunk struct {
	Text     string
	Entities []Entity
}

// flattener 把块写入缓冲区并记录 entity
type flattener struct {
	buf      *buffer.TextBuffer
	entities []Entity
}

// scope 记录 fn 写入的区间为一个 entity；空区间不产生 entity
//
// 外层 entity 先占位，内层随后追加，区间相同时稳定排序仍保持外层在前。
func (f *flattener) scope(entityType string, url string, fn func()) {
	idx := len(f.entities)
	start := f.buf.UTF16Offset()
	f.entities = append(f.entities, Entity{Type: entityType, Offset: start, URL: url})
	fn()
	if length := f.buf.UTF16Offset() - start; length > 0 {
		f.entities[idx].Length = length
	} else {
		f.entities = slices.Delete(f.entities, idx, idx+1)
	}
}

func (f *flattener) spans(spans []types.Span) {
	for _, s := range spans {
		switch s.Kind {
		case types.SpanBold:
			f.scope(EntityBold, "", func() { f.spans(s.Children) })
		case types.SpanLink:
			f.scope(EntityLink, s.URL, func() { f.spans(s.Children) })
		case types.SpanCode:
			f.scope(EntityCode, "", func() { f.buf.Write(s.Text) })
		case types.SpanEmoji:
			f.scope(EntityEmoji, "", func() { f.buf.Write(s.Text) })
		default:
			f.buf.Write(s.Text)
		}
	}
}

func (f *flattener) block(b *types.Block) {
	switch b.Kind {
	case types.BlockHeading:
		f.scope(EntityHeading, "", func() { f.spans(b.Spans) })
	case types.BlockYouTube:
		f.scope(EntityVideo, b.Video.EmbedURL, func() { f.buf.Write(b.Video.URL) })
	case types.BlockImage:
		f.scope(EntityImage, b.ImageURL, func() { f.buf.Write(b.ImageURL) })
	case types.BlockTable:
		f.scope(EntityPre, "", func() { f.buf.Write(termout.FormatTable(tableRows(b.Table))) })
	default:
		f.spans(b.Spans)
	}
}

// Flatten 将块转换为纯显示文本 + entity 列表
//
// 块之间以空行分隔。entity 按开始位置排序，外层在前（粗体/链接在其内部的 emoji 之前）。
func Flatten(blocks []Block) (string, []Entity) {
	f := &flattener{buf: buffer.New(), entities: make([]Entity, 0)}
	for i := range blocks {
		if i > 0 {
			f.buf.Write(blockSeparator)
		}
		f.block(&blocks[i])
	}
	slices.SortStableFunc(f.entities, compareEntities)
	return f.buf.String(), f.entities
}

// compareEntities 按 offset 升序、长度降序
func compareEntities(a, b Entity) int {
	if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
		return c
	}
	return cmp.Compare(b.Length, a.Length)
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
		out[i] = PlainText(c.Spans)
	}
	return out
}

// findNewlinePositions returns the byte index right after each newline.
func findNewlinePositions(text string) []int {
	var points []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			points = append(points, i+1)
		}
	}
	return points
}

// buildUTF16OffsetTable builds a cumulative UTF-16 offset table for each byte position.
// Returns a slice where result[i] is the UTF-16 offset at byte position i.
// Positions inside a multi-byte rune carry the offset of the rune start.
func buildUTF16OffsetTable(text string) []int {
	offsets := make([]int, len(text)+1)
	cum := 0
	for i, r := range text {
		size := len(string(r))
		for j := 0; j < size; j++ {
			offsets[i+j] = cum
		}
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
	}
	offsets[len(text)] = cum
	return offsets
}

// runeStart reports whether byte position i begins a rune (or is the end).
func runeStart(text string, i int) bool {
	return i == len(text) || (text[i]&0xC0) != 0x80
}

// SplitEntities splits (text, entities) into chunks not exceeding maxUTF16Len UTF-16 code units.
//
// Tries to split at newline boundaries. Entities that span a split boundary
// are clipped into both chunks. Hard splits never cut a rune in half.
func SplitEntities(text string, entities []Entity, maxUTF16Len int) []TextChunk {
	total := UTF16Len(text)
	if total <= maxUTF16Len || maxUTF16Len <= 0 {
		return []TextChunk{{Text: text, Entities: entities}}
	}

	offsets := buildUTF16OffsetTable(text)
	splitPoints := findNewlinePositions(text)

	var chunksRanges [][2]int // [byteStart, byteEnd]
	byteStart := 0

	for byteStart < len(text) {
		utf16Budget := offsets[byteStart] + maxUTF16Len

		if offsets[len(text)] <= utf16Budget {
			chunksRanges = append(chunksRanges, [2]int{byteStart, len(text)})
			break
		}

		// Find the last newline split point that fits within budget
		bestSplit := -1
		for _, sp := range splitPoints {
			if sp <= byteStart {
				continue
			}
			if offsets[sp] <= utf16Budget {
				bestSplit = sp
			} else {
				break
			}
		}

		if bestSplit == -1 {
			// No newline split fits: hard split at the last rune boundary within budget
			bestSplit = byteStart
			for i := byteStart + 1; i <= len(text); i++ {
				if !runeStart(text, i) {
					continue
				}
				if offsets[i] > utf16Budget {
					break
				}
				bestSplit = i
			}
			if bestSplit == byteStart {
				// Force progress by one rune
				bestSplit = byteStart + 1
				for !runeStart(text, bestSplit) {
					bestSplit++
				}
			}
		}

		chunksRanges = append(chunksRanges, [2]int{byteStart, bestSplit})
		byteStart = bestSplit
	}

	result := make([]TextChunk, 0, len(chunksRanges))
	for _, chunkRange := range chunksRanges {
		chunkText, chunkEntities := sliceTextEntities(
			text, entities,
			chunkRange[0], chunkRange[1],
			offsets[chunkRange[0]], offsets[chunkRange[1]],
		)
		result = append(result, TextChunk{Text: chunkText, Entities: chunkEntities})
	}
	return result
}

// sliceTextEntities 提取子串及其重叠的实体，调整偏移量
func sliceTextEntities(
	fullText string,
	fullEntities []Entity,
	byteStart int,
	byteEnd int,
	utf16Start int,
	utf16End int,
) (string, []Entity) {
	chunkText := fullText[byteStart:byteEnd]
	chunkEntities := make([]Entity, 0)

	for _, ent := range fullEntities {
		clippedStart := max(ent.Offset, utf16Start)
		clippedEnd := min(ent.Offset+ent.Length, utf16End)
		if clippedEnd <= clippedStart {
			continue
		}
		chunkEntities = append(chunkEntities, Entity{
			Type:   ent.Type,
			Offset: clippedStart - utf16Start,
			Length: clippedEnd - clippedStart,
			URL:    ent.URL,
		})
	}

	return chunkText, chunkEntities
}

// trimAdjust 按给定的判定函数去除首尾字符，并调整 entity 偏移量
func trimAdjust(text string, entities []Entity, cut func(rune) bool) (string, []Entity) {
	trimmed := strings.TrimLeftFunc(text, cut)
	leadingUTF16 := UTF16Len(text[:len(text)-len(trimmed)])
	trimmed = strings.TrimRightFunc(trimmed, cut)
	if trimmed == text {
		return text, entities
	}
	if trimmed == "" {
		return "", []Entity{}
	}
	_, adjusted := sliceTextEntities(trimmed, entities, 0, len(trimmed), leadingUTF16, leadingUTF16+UTF16Len(trimmed))
	return trimmed, adjusted
}

// stripNewlinesAdjust 去除首尾换行符并调整 entity 偏移量
func stripNewlinesAdjust(text string, entities []Entity) (string, []Entity) {
	return trimAdjust(text, entities, func(r rune) bool { return r == '\n' })
}

// TrimSpace removes leading and trailing whitespace while adjusting entities.
func TrimSpace(text string, entities []Entity) (string, []Entity) {
	return trimAdjust(text, entities, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
