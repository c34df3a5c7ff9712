package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/mdlite.db"},
		{Key: "role", Default: "user", Comment: "Acting role: admin, developer or user"},

		{Key: "render.escaped_newlines", Default: true, Comment: "Treat literal \\n sequences as line breaks"},
		{Key: "render.embed_base_url", Default: "https://www.youtube.com/embed/", Comment: "Base URL for video embeds"},
		{Key: "render.thumbnail_base_url", Default: "https://img.youtube.com/vi/", Comment: "Base URL for video thumbnails"},
		{Key: "render.emoji_class", Default: "emoji", Comment: "CSS class of emoji spans in HTML output"},
		{Key: "render.link_target", Default: "_blank", Comment: "target attribute for links in HTML output; empty disables"},
		{Key: "render.max_length", Default: 4096, Comment: "Maximum UTF-16 length of one text chunk"},
		{Key: "render.terminal_width", Default: 0, Comment: "Terminal width for right-aligning RTL blocks; 0 disables"},

		{Key: "llm.provider", Default: "openai", Comment: "QA extraction backend: openai or mock"},
		{Key: "llm.model", Default: "gpt-4o-mini", Comment: "Chat completion model"},
		{Key: "llm.api_key", Default: "", Comment: "API key; falls back to OPENAI_API_KEY"},
		{Key: "llm.base_url", Default: "", Comment: "Override the API base URL for compatible servers"},
		{Key: "llm.temperature", Default: 0.2, Comment: "Sampling temperature (0-2)"},
		{Key: "llm.max_attempts", Default: 3, Comment: "Attempts per extraction when the reply cannot be parsed"},
		{Key: "llm.max_pairs", Default: 10, Comment: "Maximum QA pairs per document; 0 means no limit"},

		{Key: "export.format", Default: "json", Comment: "Default export format: csv, json, jsonl, doc, html, text"},
		{Key: "export.approved_only", Default: true, Comment: "Export only approved QA pairs"},
		{Key: "export.bom", Default: true, Comment: "Prefix CSV exports with a UTF-8 BOM"},
	}
}
