package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/riverfjs/mdlite-go/internal/record"
)

var csvHeader = []string{
	"record_id", "title", "question", "answer", "approved", "status",
	"title_dir", "question_dir", "answer_dir",
}

// writeCSV writes one row per QA pair. Each text field gets its own
// direction column.
func writeCSV(w io.Writer, recs []*record.Record, bom bool) error {
	if bom {
		if _, err := io.WriteString(w, "\uFEFF"); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		for _, p := range r.QAPairs {
			if err := cw.Write([]string{
				r.ID,
				r.Title,
				p.Question,
				p.Answer,
				strconv.FormatBool(p.Approved),
				string(r.Status),
				direction(r.Title),
				direction(p.Question),
				direction(p.Answer),
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
