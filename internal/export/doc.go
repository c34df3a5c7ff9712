package export

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/riverfjs/mdlite-go/internal/converter"
	"github.com/riverfjs/mdlite-go/internal/htmlout"
	"github.com/riverfjs/mdlite-go/internal/parser"
	"github.com/riverfjs/mdlite-go/internal/record"
	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/util"
)

const wordHead = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
`

// writeDoc writes an HTML document; with word set it carries the Office
// namespaces so word processors open it as a .doc file. Every field is
// aligned by its own detected direction.
func writeDoc(w io.Writer, recs []*record.Record, config *types.RenderConfig, word bool) error {
	bw := bufio.NewWriter(w)
	if word {
		bw.WriteString(wordHead)
	} else {
		bw.WriteString("<!DOCTYPE html>\n<html>\n")
	}
	bw.WriteString("<head>\n<meta charset=\"utf-8\">\n<title>mdlite export</title>\n</head>\n<body>\n")

	for _, r := range recs {
		fmt.Fprintf(bw, "<div class=\"record\" id=\"record-%s\">\n", html.EscapeString(r.ID))
		fmt.Fprintf(bw, "<h1%s>%s</h1>\n", alignAttrs(r.Title), html.EscapeString(r.Title))

		content, err := htmlout.Render(parser.Parse(r.OriginalContent, config), config)
		if err != nil {
			return fmt.Errorf("render record %s: %w", r.ID, err)
		}
		fmt.Fprintf(bw, "<div class=\"original-content\"%s>\n%s</div>\n", alignAttrs(r.OriginalContent), content)

		sources, err := htmlout.RenderLinks(r.SourceLinks, "sources", config)
		if err != nil {
			return fmt.Errorf("render sources of %s: %w", r.ID, err)
		}
		bw.WriteString(sources)

		for i, p := range r.QAPairs {
			q, err := inlineHTML(p.Question, config)
			if err != nil {
				return err
			}
			a, err := inlineHTML(p.Answer, config)
			if err != nil {
				return err
			}
			fmt.Fprintf(bw, "<p class=\"question\"%s><b>Q%d:</b> %s</p>\n", alignAttrs(p.Question), i+1, q)
			fmt.Fprintf(bw, "<p class=\"answer\"%s><b>A%d:</b> %s</p>\n", alignAttrs(p.Answer), i+1, a)
		}
		bw.WriteString("</div>\n")
	}
	bw.WriteString("</body>\n</html>\n")
	return bw.Flush()
}

func inlineHTML(text string, config *types.RenderConfig) (string, error) {
	return htmlout.RenderInline(converter.FormatInline(text), config)
}

func alignAttrs(text string) string {
	dir := util.DetectDirection(text)
	align := "left"
	if dir == types.RTL {
		align = "right"
	}
	return fmt.Sprintf(" dir=\"%s\" style=\"text-align:%s\"", dir, align)
}
