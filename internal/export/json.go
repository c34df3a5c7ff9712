package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/riverfjs/mdlite-go/internal/record"
)

type jsonPair struct {
	Question    string `json:"question"`
	QuestionDir string `json:"question_dir"`
	Answer      string `json:"answer"`
	AnswerDir   string `json:"answer_dir"`
	Approved    bool   `json:"approved"`
}

type jsonRecord struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	TitleDir        string     `json:"title_dir"`
	OriginalContent string     `json:"original_content"`
	ContentDir      string     `json:"original_content_dir"`
	SourceLinks     []string   `json:"source_links"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	QAPairs         []jsonPair `json:"qa_pairs"`
}

func toJSONRecord(r *record.Record) jsonRecord {
	out := jsonRecord{
		ID:              r.ID,
		Title:           r.Title,
		TitleDir:        direction(r.Title),
		OriginalContent: r.OriginalContent,
		ContentDir:      direction(r.OriginalContent),
		SourceLinks:     nonNil(r.SourceLinks),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		QAPairs:         make([]jsonPair, 0, len(r.QAPairs)),
	}
	for _, p := range r.QAPairs {
		out.QAPairs = append(out.QAPairs, jsonPair{
			Question:    p.Question,
			QuestionDir: direction(p.Question),
			Answer:      p.Answer,
			AnswerDir:   direction(p.Answer),
			Approved:    p.Approved,
		})
	}
	return out
}

// writeJSON writes an indented array of records with a dir per text field.
func writeJSON(w io.Writer, recs []*record.Record) error {
	out := make([]jsonRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, toJSONRecord(r))
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// writeJSONL writes one chat fine-tune example per QA pair.
func writeJSONL(w io.Writer, recs []*record.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range recs {
		for _, p := range r.QAPairs {
			line := struct {
				Messages []chatMessage `json:"messages"`
			}{Messages: []chatMessage{
				{Role: "user", Content: p.Question},
				{Role: "assistant", Content: p.Answer},
			}}
			if err := enc.Encode(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
