package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/parser"
	"github.com/riverfjs/mdlite-go/internal/record"
	"github.com/riverfjs/mdlite-go/internal/termout"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// writeText writes an unstyled plain-text report.
func writeText(w io.Writer, recs []*record.Record, config *types.RenderConfig) error {
	r := termout.New(0, config)
	r.Styles = termout.PlainStyles()

	bw := bufio.NewWriter(w)
	for i, rec := range recs {
		if i > 0 {
			bw.WriteString("\n" + strings.Repeat("=", 40) + "\n\n")
		}
		fmt.Fprintf(bw, "%s [%s] %s\n\n", rec.ID, rec.Status, rec.Title)
		bw.WriteString(r.Render(parser.Parse(rec.OriginalContent, config)))
		bw.WriteString("\n")
		for j, p := range rec.QAPairs {
			mark := " "
			if p.Approved {
				mark = "x"
			}
			fmt.Fprintf(bw, "\n[%s] Q%d: %s\n    A%d: %s\n", mark, j+1, p.Question, j+1, p.Answer)
		}
	}
	return bw.Flush()
}
