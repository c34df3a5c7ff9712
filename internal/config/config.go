// Package config loads mdlite settings with Viper.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/export"
	"github.com/riverfjs/mdlite-go/internal/extract"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
func Load(ctx context.Context, v *viper.Viper) error {
	// SetConfigFile upstream wins; these paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdlite"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdlite"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// MDLITE_* environment variables
	v.SetEnvPrefix("mdlite")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	if v.GetString("llm.api_key") == "" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			v.Set("llm.api_key", key)
		}
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/mdlite or ~/.local/share/mdlite.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdlite")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mdlite")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "mdlite", "config.toml")
}

// ResolveDBPath returns data_dir/mdlite.db with ~ expanded.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "mdlite.db")
}

// RenderConfig builds the renderer configuration from the render.* keys.
func RenderConfig(v *viper.Viper) *types.RenderConfig {
	cfg := types.DefaultRenderConfig()
	cfg.EscapedNewlines = v.GetBool("render.escaped_newlines")
	cfg.EmbedBaseURL = v.GetString("render.embed_base_url")
	cfg.ThumbnailBaseURL = v.GetString("render.thumbnail_base_url")
	cfg.EmojiClass = v.GetString("render.emoji_class")
	cfg.LinkTarget = v.GetString("render.link_target")
	return cfg
}

// LLMSettings builds the extraction client settings from the llm.* keys.
func LLMSettings(v *viper.Viper) *extract.LLMSettings {
	return &extract.LLMSettings{
		Provider:    v.GetString("llm.provider"),
		Model:       v.GetString("llm.model"),
		APIKey:      v.GetString("llm.api_key"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: v.GetFloat64("llm.temperature"),
	}
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		add("data_dir is required")
	}
	if _, err := access.ParseRole(v.GetString("role")); err != nil {
		add("role must be one of admin, developer, user")
	}
	for _, key := range []string{"render.embed_base_url", "render.thumbnail_base_url"} {
		if u, err := url.Parse(v.GetString(key)); err != nil || u.Scheme == "" || u.Host == "" {
			add("%s must be an absolute url", key)
		}
	}
	if v.GetInt("render.max_length") <= 0 {
		add("render.max_length must be greater than 0")
	}
	if v.GetInt("render.terminal_width") < 0 {
		add("render.terminal_width must not be negative")
	}
	switch v.GetString("llm.provider") {
	case "openai":
		if v.GetString("llm.model") == "" {
			add("llm.model is required for provider openai")
		}
	case "mock":
	default:
		add("llm.provider must be openai or mock")
	}
	if t := v.GetFloat64("llm.temperature"); t < 0 || t > 2 {
		add("llm.temperature must be between 0 and 2")
	}
	if v.GetInt("llm.max_attempts") <= 0 {
		add("llm.max_attempts must be greater than 0")
	}
	if v.GetInt("llm.max_pairs") < 0 {
		add("llm.max_pairs must not be negative")
	}
	if _, err := export.ParseFormat(v.GetString("export.format")); err != nil {
		add("export.format %q is not supported", v.GetString("export.format"))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
