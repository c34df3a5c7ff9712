package mdlite

// ContentType represents the type of content.
type ContentType int

const (
	// ContentTypeText represents a text segment.
	ContentTypeText ContentType = iota
	// ContentTypePhoto represents a downloaded image.
	ContentTypePhoto
)

// String returns the string representation of ContentType.
func (ct ContentType) String() string {
	switch ct {
	case ContentTypeText:
		return "text"
	case ContentTypePhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// ContentTrace.SourceType 取值
const (
	TraceText    = "text"
	TraceImage   = "image"
	TraceYouTube = "youtube"
)

// ContentTrace tracks the source and metadata of content.
type ContentTrace struct {
	SourceType string
	Extra      map[string]interface{}
}

// Content represents a piece of processed output.
type Content interface {
	GetContentType() ContentType
	GetContentTrace() ContentTrace
}

// Text represents a text segment with its entities.
type Text struct {
	Text         string
	Entities     []Entity
	Direction    Direction
	ContentTrace ContentTrace
}

// GetContentType returns ContentTypeText.
func (t *Text) GetContentType() ContentType {
	return ContentTypeText
}

// GetContentTrace returns the content trace.
func (t *Text) GetContentTrace() ContentTrace {
	return t.ContentTrace
}

// Photo represents a downloaded image or video thumbnail.
type Photo struct {
	FileName        string
	FileData        []byte
	Format          string
	Width           int
	Height          int
	CaptionText     string
	CaptionEntities []Entity
	ContentTrace    ContentTrace
}

// GetContentType returns ContentTypePhoto.
func (p *Photo) GetContentType() ContentType {
	return ContentTypePhoto
}

// GetContentTrace returns the content trace.
func (p *Photo) GetContentTrace() ContentTrace {
	return p.ContentTrace
}
