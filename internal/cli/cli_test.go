package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/editor"
	"github.com/riverfjs/mdlite-go/internal/store"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// writeConfigTOML isolates XDG dirs and writes a config using the mock LLM.
func writeConfigTOML(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg-data"))
	t.Setenv("OPENAI_API_KEY", "")
	dataDir := filepath.Join(dir, "data")
	cfg := filepath.Join(dir, "config.toml")
	content := `data_dir = "` + strings.ReplaceAll(dataDir, "\\", "\\\\") + `"
role = "admin"

[llm]
provider = "mock"
`
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))
	return cfg, dir
}

func run(t *testing.T, cfg, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func savedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 2, out)
	require.Equal(t, "saved", fields[0], out)
	return strings.TrimSuffix(fields[1], ":")
}

func TestRenderHTML(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	out, err := run(t, cfg, "Hello **world**\n", "render", "-f", "html")
	require.NoError(t, err)
	assert.Equal(t, "<p dir=\"ltr\">Hello <strong>world</strong></p>\n", out)
}

func TestRenderTerminalPlainRTL(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	out, err := run(t, cfg, "سلام", "render", "--plain", "-w", "10")
	require.NoError(t, err)
	assert.Equal(t, "      سلام\n", out)
}

func TestRenderFileAndEntities(t *testing.T) {
	cfg, dir := writeConfigTOML(t)
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("a **b** [c](https://c.example)"), 0o600))

	out, err := run(t, cfg, "", "render", "-f", "entities", path)
	require.NoError(t, err)
	var got struct {
		Text     string `json:"text"`
		Entities []struct {
			Type   string `json:"type"`
			Offset int    `json:"offset"`
			Length int    `json:"length"`
			URL    string `json:"url"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "a b c", got.Text)
	require.Len(t, got.Entities, 2)
	assert.Equal(t, "bold", got.Entities[0].Type)
	assert.Equal(t, "https://c.example", got.Entities[1].URL)
}

func TestRenderStatsAndChunks(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	out, err := run(t, cfg, "one two 😀\n\nhttps://youtu.be/dQw4w9WgXcQ", "render", "--stats")
	require.NoError(t, err)
	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats["blocks"])
	assert.Equal(t, 1, stats["emoji"])
	assert.Equal(t, 1, stats["videos"])

	out, err = run(t, cfg, "hello\n\nworld", "render", "-f", "chunks")
	require.NoError(t, err)
	var chunks []chunkSummary
	require.NoError(t, json.Unmarshal([]byte(out), &chunks))
	require.Len(t, chunks, 1)
	assert.Equal(t, "text", chunks[0].Type)
	assert.Equal(t, "hello\n\nworld", chunks[0].Text)
}

func TestRenderUnknownFormat(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	_, err := run(t, cfg, "x", "render", "-f", "pdf")
	assert.Error(t, err)
}

func TestDocumentLifecycle(t *testing.T) {
	cfg, dir := writeConfigTOML(t)
	input := "# Intro\nGo is fast\n\nSecond part"

	out, err := run(t, cfg, input, "extract", "-l", "https://go.dev")
	require.NoError(t, err)
	id := savedID(t, out)
	assert.Contains(t, out, ": Intro")
	assert.Contains(t, out, "[ ] 2. Q:")

	out, err = run(t, cfg, "", "doc", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "0/2")

	out, err = run(t, cfg, "", "doc", "approve", id, "--pair", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2 pairs approved, status pending")

	out, err = run(t, cfg, "", "doc", "list", "--status", "approved")
	require.NoError(t, err)
	assert.NotContains(t, out, id)

	out, err = run(t, cfg, "", "doc", "approve", id)
	require.NoError(t, err)
	assert.Contains(t, out, "status approved")

	out, err = run(t, cfg, "", "doc", "edit", id, "-p", "2", "-a", "Edited **answer**")
	require.NoError(t, err)
	assert.Contains(t, out, "A: Edited **answer**")

	out, err = run(t, cfg, "", "doc", "show", id, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "[pending]")
	assert.Contains(t, out, "Go is fast")
	assert.Contains(t, out, "source: https://go.dev")
	assert.Contains(t, out, "[x] 1. Q:")
	assert.Contains(t, out, "[ ] 2. Q:")

	out, err = run(t, cfg, "", "export", "-f", "jsonl", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "only the approved pair is exported")

	out, err = run(t, cfg, "", "export", "-f", "json", "-o", dir)
	require.NoError(t, err)
	written := filepath.Join(dir, "Intro.json")
	assert.Contains(t, out, written)
	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title_dir": "ltr"`)

	out, err = run(t, cfg, "", "doc", "delete", id)
	require.NoError(t, err)
	assert.Equal(t, "deleted "+id+"\n", out)

	_, err = run(t, cfg, "", "doc", "show", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocAddWithPairs(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	out, err := run(t, cfg, "مرحبا بالعالم", "doc", "add", "-t", "Greeting", "-p", "What?::Hello", "-p", "ما هذا؟::تحية")
	require.NoError(t, err)
	id := savedID(t, out)

	out, err = run(t, cfg, "", "doc", "show", id, "-f", "json")
	require.NoError(t, err)
	var rec struct {
		Title   string `json:"title"`
		QAPairs []struct {
			Question string `json:"question"`
		} `json:"qa_pairs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Greeting", rec.Title)
	require.Len(t, rec.QAPairs, 2)
	assert.Equal(t, "ما هذا؟", rec.QAPairs[1].Question)

	_, err = run(t, cfg, "text", "doc", "add", "-p", "no separator")
	assert.Error(t, err)
}

func TestRolePolicy(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	out, err := run(t, cfg, "content", "doc", "add", "-p", "q::a")
	require.NoError(t, err)
	id := savedID(t, out)

	_, err = run(t, cfg, "", "--role", "user", "doc", "delete", id)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = run(t, cfg, "", "--role", "developer", "doc", "approve", id)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = run(t, cfg, "", "--role", "user", "export", "-o", "-")
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = run(t, cfg, "", "--role", "developer", "export", "-o", "-", "--all")
	assert.NoError(t, err)

	_, err = run(t, cfg, "", "--role", "root", "doc", "list")
	assert.Error(t, err)
}

func TestDocAddDoesNotOverwrite(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	out, err := run(t, cfg, "Some document", "doc", "add", "-p", "q1::a1")
	require.NoError(t, err)
	id := savedID(t, out)
	_, err = run(t, cfg, "", "doc", "approve", id)
	require.NoError(t, err)

	_, err = run(t, cfg, "Some document", "--role", "user", "doc", "add", "-p", "junk::junk")
	assert.ErrorIs(t, err, store.ErrExists)
	_, err = run(t, cfg, "Some document", "--role", "user", "doc", "add", "--replace", "-p", "junk::junk")
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = run(t, cfg, "Some document", "--role", "user", "extract")
	assert.ErrorIs(t, err, store.ErrExists)

	out, err = run(t, cfg, "", "doc", "show", id, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "[approved]")
	assert.Contains(t, out, "Q: q1")
	assert.NotContains(t, out, "junk")

	// admin 可以显式覆盖
	_, err = run(t, cfg, "Some document", "doc", "add", "--replace", "-p", "new::pair")
	require.NoError(t, err)
	out, err = run(t, cfg, "", "doc", "show", id, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "[pending]")
	assert.Contains(t, out, "Q: new")
}

func TestConfigCommands(t *testing.T) {
	cfg, dir := writeConfigTOML(t)
	t.Setenv("MDLITE_LLM_API_KEY", "sk-secret")

	out, err := run(t, cfg, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "llm.provider = mock")
	assert.Contains(t, out, "llm.api_key = ********")
	assert.NotContains(t, out, "sk-secret")

	target := filepath.Join(dir, "gen", "config.toml")
	out, err = run(t, cfg, "", "config", "generate", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[llm]")

	_, err = run(t, cfg, "", "config", "generate", "-o", target)
	assert.Error(t, err)
	_, err = run(t, cfg, "", "config", "generate", "-o", target, "--overwrite")
	assert.NoError(t, err)
}

func TestCompose(t *testing.T) {
	cfg, _ := writeConfigTOML(t)
	input := "Hello world\nسلام\n"

	out, err := run(t, cfg, input, "compose", "--bold", "1:0-5")
	require.NoError(t, err)
	assert.Equal(t, "**Hello** world\n\nسلام\n", out)

	out, err = run(t, cfg, input, "compose", "-f", "json", "--italic", "2", "--align", "1:center")
	require.NoError(t, err)
	doc, err := editor.Unmarshal([]byte(out))
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, editor.AlignCenter, doc.Paragraphs[0].Align)
	assert.Equal(t, types.RTL, doc.Paragraphs[1].Direction)
	assert.True(t, doc.Paragraphs[1].Runs[0].Style.Italic)

	// json 输入可以继续编辑
	out, err = run(t, cfg, out, "compose", "--json", "--dir", "1:rtl", "-f", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `dir="rtl"`)

	out, err = run(t, cfg, "hello world\nsecond", "compose", "-f", "html",
		"--italic", "1:0-5", "--align", "2:center", "--dir", "2:rtl")
	require.NoError(t, err)
	assert.Equal(t, `<p dir="ltr" style="text-align:left"><em>hello</em> world</p>`+"\n"+
		`<p dir="rtl" style="text-align:center">second</p>`+"\n", out)

	out, err = run(t, cfg, "hello world", "compose", "--bold", "1:0-5", "--italic", "1:3-8")
	require.NoError(t, err)
	assert.Equal(t, "**hello** world\n", out)

	_, err = run(t, cfg, input, "compose", "--bold", "9:0-1")
	assert.Error(t, err)
	_, err = run(t, cfg, input, "compose", "--align", "1:middle")
	assert.Error(t, err)
	_, err = run(t, cfg, input, "--role", "user", "compose")
	assert.ErrorIs(t, err, access.ErrForbidden)
}
