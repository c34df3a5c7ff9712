package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/riverfjs/mdlite-go/internal/types"
)

// EmojiRanges lists the code point ranges treated as standalone emoji.
// Ranges inside each table must stay sorted for unicode.Is.
var EmojiRanges = []*unicode.RangeTable{
	{R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // misc symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map
	}},
	{R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // misc symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // dingbats
	}},
}

// IsEmoji reports whether r falls in one of EmojiRanges.
func IsEmoji(r rune) bool {
	return unicode.IsOneOf(EmojiRanges, r)
}

// ContainsEmoji reports whether s has at least one emoji code point.
func ContainsEmoji(s string) bool {
	for _, r := range s {
		if IsEmoji(r) {
			return true
		}
	}
	return false
}

type scriptRange struct {
	script types.Script
	lo, hi rune
}

// Probed in order; the first range with any hit wins.
var scriptRanges = []scriptRange{
	{types.ScriptArabic, 0x0600, 0x06FF},
	{types.ScriptHebrew, 0x0590, 0x05FF},
	{types.ScriptPersian, 0x06A0, 0x06FF},
}

// DetectScript classifies s by presence of RTL characters.
// A single Arabic or Hebrew code point is enough; the count does not matter.
func DetectScript(s string) types.Script {
	for _, sr := range scriptRanges {
		for _, r := range s {
			if r >= sr.lo && r <= sr.hi {
				return sr.script
			}
		}
	}
	return types.ScriptLatin
}

// DetectDirection returns RTL when DetectScript finds a right-to-left script.
func DetectDirection(s string) types.Direction {
	return DetectScript(s).Direction()
}

// FormatToExt maps export format names to file extensions.
var FormatToExt = map[string]string{
	"csv":   "csv",
	"json":  "json",
	"jsonl": "jsonl",
	"doc":   "doc",
	"word":  "doc",
	"html":  "html",
	"text":  "txt",
	"tree":  "json",
}

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_\-\.]+`)

// GetExt returns the file extension for a given export format.
func GetExt(format string) string {
	ext, ok := FormatToExt[strings.ToLower(format)]
	if !ok {
		return "txt"
	}
	return ext
}

// GetFilename builds a filesystem-safe filename from a document title.
//
// Runs of unsafe characters collapse to a single '_'. Falls back to
// 'export.<ext>' when nothing usable is left.
func GetFilename(title string, format string) string {
	ext := GetExt(format)
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(title), "_")
	name = strings.Trim(name, "_.")
	if runes := []rune(name); len(runes) > 48 {
		name = string(runes[:48])
	}
	if name == "" {
		return "export." + ext
	}
	if filepath.Ext(name) == "."+ext {
		return name
	}
	return name + "." + ext
}
