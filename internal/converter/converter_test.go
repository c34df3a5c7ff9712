package converter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/riverfjs/mdlite-go/internal/types"
)

func kinds(spans []types.Span) []types.SpanKind {
	out := make([]types.SpanKind, len(spans))
	for i, s := range spans {
		out[i] = s.Kind
	}
	return out
}

// TestNormalizeNewlines 测试换行规范化
func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		in      string
		escaped bool
		want    string
	}{
		{"a\r\nb", false, "a\nb"},
		{`a\nb`, true, "a\nb"},
		{`a\nb`, false, `a\nb`},
		{`a\n\nb` + "\n\nc", true, "a\n\nb\n\nc"},
	}
	for _, tt := range tests {
		if got := NormalizeNewlines(tt.in, tt.escaped); got != tt.want {
			t.Errorf("NormalizeNewlines(%q, %v) = %q, want %q", tt.in, tt.escaped, got, tt.want)
		}
	}
}

// TestSplitBlocks 测试按空行拆分
func TestSplitBlocks(t *testing.T) {
	got := SplitBlocks("one\n\ntwo\nline\n \n\n\nthree\n\n")
	want := []string{"one", "two\nline", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitBlocks() = %q, want %q", got, want)
	}
	if got := SplitBlocks("  \n\n "); len(got) != 0 {
		t.Errorf("SplitBlocks(blank) = %q, want empty", got)
	}
}

// TestSegmentEmoji_Adjacent 相邻 emoji 不合并
func TestSegmentEmoji_Adjacent(t *testing.T) {
	spans := SegmentEmoji("a😀😀b")
	want := []types.Span{
		{Kind: types.SpanText, Raw: "a", Text: "a"},
		{Kind: types.SpanEmoji, Raw: "😀", Text: "😀"},
		{Kind: types.SpanText, Raw: "", Text: ""},
		{Kind: types.SpanEmoji, Raw: "😀", Text: "😀"},
		{Kind: types.SpanText, Raw: "b", Text: "b"},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("SegmentEmoji() = %+v, want %+v", spans, want)
	}
}

// TestSegmentEmoji_Edges 测试首尾 emoji 与无 emoji 文本
func TestSegmentEmoji_Edges(t *testing.T) {
	tests := []struct {
		in   string
		want []types.SpanKind
	}{
		{"", nil},
		{"plain", []types.SpanKind{types.SpanText}},
		{"😀", []types.SpanKind{types.SpanEmoji}},
		{"😀 hi", []types.SpanKind{types.SpanEmoji, types.SpanText}},
		{"hi ✅", []types.SpanKind{types.SpanText, types.SpanEmoji}},
		{"🇺🇸", []types.SpanKind{types.SpanEmoji, types.SpanText, types.SpanEmoji}},
	}
	for _, tt := range tests {
		got := SegmentEmoji(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(kinds(got), tt.want) {
			t.Errorf("SegmentEmoji(%q) kinds = %v, want %v", tt.in, kinds(got), tt.want)
		}
		if JoinRaw(got) != tt.in {
			t.Errorf("SegmentEmoji(%q) round trip = %q", tt.in, JoinRaw(got))
		}
	}
}

// TestFormatInline_Basic 测试粗体、链接、代码
func TestFormatInline_Basic(t *testing.T) {
	spans := FormatInline("see **this** and [docs](https://x.io) or `go test`.")
	wantKinds := []types.SpanKind{
		types.SpanText, types.SpanBold, types.SpanText, types.SpanLink,
		types.SpanText, types.SpanCode, types.SpanText,
	}
	if !reflect.DeepEqual(kinds(spans), wantKinds) {
		t.Fatalf("kinds = %v, want %v", kinds(spans), wantKinds)
	}
	if spans[1].Text != "this" || spans[1].Raw != "**this**" {
		t.Errorf("bold = %+v", spans[1])
	}
	if spans[3].Text != "docs" || spans[3].URL != "https://x.io" {
		t.Errorf("link = %+v", spans[3])
	}
	if spans[5].Text != "go test" {
		t.Errorf("code = %+v", spans[5])
	}
}

// TestFormatInline_BoldWinsOverLink 粗体包裹链接时粗体优先，内部不再解析为链接
func TestFormatInline_BoldWinsOverLink(t *testing.T) {
	spans := FormatInline("**[x](http://y)**")
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1: %+v", len(spans), spans)
	}
	bold := spans[0]
	if bold.Kind != types.SpanBold {
		t.Fatalf("kind = %v, want bold", bold.Kind)
	}
	if bold.Text != "[x](http://y)" {
		t.Errorf("bold text = %q", bold.Text)
	}
	for _, c := range bold.Children {
		if c.Kind == types.SpanLink {
			t.Errorf("bold child parsed as link: %+v", c)
		}
	}
}

// TestFormatInline_EmojiInsideSpans 粗体和链接文字做 emoji 拆分，代码不做
func TestFormatInline_EmojiInsideSpans(t *testing.T) {
	spans := FormatInline("**hi 😀** `😀` [go 🚀](u)")
	if got := kinds(spans[0].Children); !reflect.DeepEqual(got, []types.SpanKind{types.SpanText, types.SpanEmoji}) {
		t.Errorf("bold children = %v", got)
	}
	if spans[2].Kind != types.SpanCode || spans[2].Children != nil || spans[2].Text != "😀" {
		t.Errorf("code span = %+v", spans[2])
	}
	link := spans[4]
	if link.Kind != types.SpanLink || len(link.Children) != 2 || link.Children[1].Kind != types.SpanEmoji {
		t.Errorf("link span = %+v", link)
	}
}

// TestFormatInline_RoundTrip 所有片段 Raw 拼接还原原文
func TestFormatInline_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"**bold** then **more**",
		"**unclosed bold",
		"[label](http://a.b) [broken](",
		"a😀😀b `code 😀` **😀**",
		"line one\nline **two**\n`three`",
		"***triple***",
		"مرحبا **عالم** 🌍",
	}
	for _, in := range inputs {
		spans := FormatInline(in)
		if got := JoinRaw(spans); got != in {
			t.Errorf("FormatInline(%q) round trip = %q", in, got)
		}
		for _, s := range spans {
			if s.Kind == types.SpanBold || s.Kind == types.SpanLink {
				if got := JoinRaw(s.Children); got != s.Text {
					t.Errorf("children of %q = %q, want %q", s.Raw, got, s.Text)
				}
			}
		}
	}
}

// TestParseTable 测试表格解析
func TestParseTable(t *testing.T) {
	table := ParseTable("| Name | Score |\n|---|---|\n| Ann | **9** |\n\n| Bob | 7 |")
	if table == nil {
		t.Fatal("ParseTable() = nil")
	}
	if len(table.Header) != 2 || table.Header[0].Raw != "Name" || table.Header[1].Raw != "Score" {
		t.Errorf("header = %+v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][1].Spans[0].Kind != types.SpanBold {
		t.Errorf("cell spans = %+v", table.Rows[0][1].Spans)
	}
}

// TestParseTable_Rejects 结构不合法时返回 nil
func TestParseTable_Rejects(t *testing.T) {
	inputs := []string{
		"a | b\nc | d",
		"a | b\n--- ---\nc | d",
		"a | b\n| | |\nc | d",
		"a | b\n|:--|--:|\nc | d",
		"a | b\nnot a separator\nc | d",
	}
	for _, in := range inputs {
		if got := ParseTable(in); got != nil {
			t.Errorf("ParseTable(%q) = %+v, want nil", in, got)
		}
	}
}

// TestClassifyBlock 测试块分类优先级
func TestClassifyBlock(t *testing.T) {
	cfg := types.DefaultRenderConfig()
	tests := []struct {
		name string
		in   string
		want types.BlockKind
	}{
		{"heading", "## Title", types.BlockHeading},
		{"hashtag is paragraph", "#hashtag", types.BlockParagraph},
		{"youtube", "https://youtu.be/dQw4w9WgXcQ", types.BlockYouTube},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5", types.BlockYouTube},
		{"youtube bad id", "https://youtu.be/short", types.BlockParagraph},
		{"image", "https://cdn.example.com/pic.PNG?w=200", types.BlockImage},
		{"image with text", "look https://cdn.example.com/pic.png", types.BlockParagraph},
		{"table", "a | b\n---|---\n1 | 2", types.BlockTable},
		{"two line table", "a | b\n1 | 2", types.BlockParagraph},
		{"paragraph", "just words", types.BlockParagraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := ClassifyBlock(tt.in, cfg)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks", len(blocks))
			}
			if blocks[0].Kind != tt.want {
				t.Errorf("kind = %v, want %v", blocks[0].Kind, tt.want)
			}
		})
	}
}

// TestClassifyBlock_HeadingClamp 超过 6 个 # 时级别截断为 6
func TestClassifyBlock_HeadingClamp(t *testing.T) {
	blocks := ClassifyBlock("######## Deep", types.DefaultRenderConfig())
	if blocks[0].Kind != types.BlockHeading || blocks[0].Level != 6 {
		t.Errorf("block = %+v, want heading level 6", blocks[0])
	}
	if JoinRaw(blocks[0].Spans) != "Deep" {
		t.Errorf("heading text = %q", JoinRaw(blocks[0].Spans))
	}
}

// TestClassifyBlock_HeadingWithBody 标题后的行作为新块
func TestClassifyBlock_HeadingWithBody(t *testing.T) {
	blocks := ClassifyBlock("# Title\nbody **text**\nmore", types.DefaultRenderConfig())
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Kind != types.BlockHeading || blocks[1].Kind != types.BlockParagraph {
		t.Errorf("kinds = %v, %v", blocks[0].Kind, blocks[1].Kind)
	}
	if got := JoinRaw(blocks[1].Spans); got != "body **text**\nmore" {
		t.Errorf("body = %q", got)
	}
}

// TestClassifyBlock_YouTubeFallbackLink 无法提取 id 的 YouTube 链接渲染为普通链接
func TestClassifyBlock_YouTubeFallbackLink(t *testing.T) {
	raw := "https://www.youtube.com/channel/UC123"
	blocks := ClassifyBlock(raw, types.DefaultRenderConfig())
	b := blocks[0]
	if b.Kind != types.BlockParagraph || len(b.Spans) != 1 {
		t.Fatalf("block = %+v", b)
	}
	if b.Spans[0].Kind != types.SpanLink || b.Spans[0].URL != raw {
		t.Errorf("span = %+v", b.Spans[0])
	}
}

// TestClassifyBlock_YouTubeEmbed 测试嵌入 URL
func TestClassifyBlock_YouTubeEmbed(t *testing.T) {
	blocks := ClassifyBlock("https://youtu.be/dQw4w9WgXcQ?t=90", types.DefaultRenderConfig())
	v := blocks[0].Video
	if v == nil {
		t.Fatal("video = nil")
	}
	if v.ID != "dQw4w9WgXcQ" {
		t.Errorf("id = %q", v.ID)
	}
	if !strings.Contains(v.EmbedURL, "start=90") {
		t.Errorf("embed = %q", v.EmbedURL)
	}
}
