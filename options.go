package mdlite

import "net/http"

// DefaultMaxLength 是 Process 单个文本片段的默认最大 UTF-16 长度
const DefaultMaxLength = 4096

// ConvertOptions holds options for rendering and processing.
type ConvertOptions struct {
	Config          *RenderConfig
	EscapedNewlines *bool
	MaxLength       int
	FetchMedia      bool
	HTTPClient      *http.Client
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// WithEscapedNewlines sets whether literal `\n` sequences count as line breaks.
func WithEscapedNewlines(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.EscapedNewlines = &enable
	}
}

// WithMaxLength sets the maximum UTF-16 length of each Text produced by Process.
func WithMaxLength(n int) Option {
	return func(opts *ConvertOptions) {
		opts.MaxLength = n
	}
}

// WithFetchMedia enables downloading images and video thumbnails in Process.
func WithFetchMedia(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.FetchMedia = enable
	}
}

// WithHTTPClient sets the client used for media downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *ConvertOptions) {
		opts.HTTPClient = client
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Config:    DefaultConfig(),
		MaxLength: DefaultMaxLength,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	if options.MaxLength <= 0 {
		options.MaxLength = DefaultMaxLength
	}
	return options
}

// renderConfig 返回实际使用的配置；覆盖项会作用在副本上，不修改共享的默认配置
func (o *ConvertOptions) renderConfig() *RenderConfig {
	if o.EscapedNewlines == nil || *o.EscapedNewlines == o.Config.EscapedNewlines {
		return o.Config
	}
	c := *o.Config
	c.EscapedNewlines = *o.EscapedNewlines
	return &c
}
