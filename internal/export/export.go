// Package export writes training records in the supported download formats.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/record"
	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/util"
)

// Format is an export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatDoc   Format = "doc"
	FormatHTML  Format = "html"
	FormatText  Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatJSON, FormatJSONL, FormatDoc, FormatHTML, FormatText}

// ParseFormat parses a format name; "word" is an alias of "doc".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "word" {
		return FormatDoc, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Options controls an export.
type Options struct {
	Format Format
	// ApprovedOnly drops unapproved pairs and records left without pairs.
	ApprovedOnly bool
	// BOM prefixes CSV output with a UTF-8 byte order mark for spreadsheet apps.
	BOM    bool
	Config *types.RenderConfig
}

// Export writes recs to w in opts.Format.
func Export(w io.Writer, recs []*record.Record, opts Options) error {
	if opts.Config == nil {
		opts.Config = types.DefaultRenderConfig()
	}
	if opts.ApprovedOnly {
		recs = FilterApproved(recs)
	}
	switch opts.Format {
	case FormatCSV:
		return writeCSV(w, recs, opts.BOM)
	case FormatJSON:
		return writeJSON(w, recs)
	case FormatJSONL:
		return writeJSONL(w, recs)
	case FormatDoc:
		return writeDoc(w, recs, opts.Config, true)
	case FormatHTML:
		return writeDoc(w, recs, opts.Config, false)
	case FormatText:
		return writeText(w, recs, opts.Config)
	default:
		return fmt.Errorf("unknown export format %q", opts.Format)
	}
}

// FilterApproved returns copies of recs holding only approved pairs.
func FilterApproved(recs []*record.Record) []*record.Record {
	out := make([]*record.Record, 0, len(recs))
	for _, r := range recs {
		pairs := r.ApprovedPairs()
		if len(pairs) == 0 {
			continue
		}
		cp := *r
		cp.QAPairs = pairs
		out = append(out, &cp)
	}
	return out
}

// Filename suggests a download name: the record title for a single record,
// otherwise "mdlite-export".
func Filename(recs []*record.Record, format Format) string {
	title := "mdlite-export"
	if len(recs) == 1 {
		title = recs[0].Title
	}
	return util.GetFilename(title, string(format))
}

func direction(s string) string {
	return util.DetectDirection(s).String()
}
