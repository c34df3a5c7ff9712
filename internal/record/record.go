// Package record defines the training-data record: a source text together
// with the question/answer pairs extracted from it and their review state.
package record

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// Status is the review state of a record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

// ParseStatus accepts "pending", "approved" or "" (any).
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StatusPending, StatusApproved:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// ErrPairIndex is returned when a QA pair index is out of range.
var ErrPairIndex = errors.New("qa pair index out of range")

// QAPair is one extracted question with its answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Approved bool   `json:"approved"`
}

// Record is a stored source document and its QA pairs.
type Record struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	OriginalContent string    `json:"original_content"`
	SourceLinks     []string  `json:"source_links,omitempty"`
	QAPairs         []QAPair  `json:"qa_pairs"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// New builds a pending record with a content-derived ID.
func New(title, content string, links []string, pairs []QAPair, now time.Time) *Record {
	r := &Record{
		Title:           strings.TrimSpace(title),
		OriginalContent: content,
		SourceLinks:     append([]string(nil), links...),
		QAPairs:         append([]QAPair(nil), pairs...),
		Status:          StatusPending,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if r.Title == "" {
		r.Title = DeriveTitle(content)
	}
	r.ID = r.Fingerprint()[:16]
	r.Refresh()
	return r
}

// Fingerprint returns a BLAKE3 hash of the title, content and links.
func (r *Record) Fingerprint() string {
	h := blake3.New()
	h.Write([]byte(r.Title))
	h.Write([]byte{0})
	h.Write([]byte(r.OriginalContent))
	h.Write([]byte{0})
	for _, l := range r.SourceLinks {
		h.Write([]byte(l))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Refresh recomputes Status from the pair approvals. A record without pairs
// stays pending.
func (r *Record) Refresh() {
	if len(r.QAPairs) == 0 {
		r.Status = StatusPending
		return
	}
	for _, p := range r.QAPairs {
		if !p.Approved {
			r.Status = StatusPending
			return
		}
	}
	r.Status = StatusApproved
}

// SetApproval marks pair i (or all pairs when i < 0).
func (r *Record) SetApproval(i int, approved bool) error {
	if i >= len(r.QAPairs) {
		return fmt.Errorf("%w: %d", ErrPairIndex, i)
	}
	if i < 0 {
		for j := range r.QAPairs {
			r.QAPairs[j].Approved = approved
		}
	} else {
		r.QAPairs[i].Approved = approved
	}
	r.Refresh()
	return nil
}

// UpdatePair replaces the text of pair i. An edited pair needs review again.
func (r *Record) UpdatePair(i int, question, answer string) error {
	if i < 0 || i >= len(r.QAPairs) {
		return fmt.Errorf("%w: %d", ErrPairIndex, i)
	}
	if q := strings.TrimSpace(question); q != "" {
		r.QAPairs[i].Question = q
	}
	if a := strings.TrimSpace(answer); a != "" {
		r.QAPairs[i].Answer = a
	}
	r.QAPairs[i].Approved = false
	r.Refresh()
	return nil
}

// ApprovedPairs returns only the approved pairs.
func (r *Record) ApprovedPairs() []QAPair {
	out := make([]QAPair, 0, len(r.QAPairs))
	for _, p := range r.QAPairs {
		if p.Approved {
			out = append(out, p)
		}
	}
	return out
}

// DeriveTitle uses the first non-empty line with heading markers stripped.
func DeriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > 80 {
			line = string(runes[:80])
		}
		return line
	}
	return "untitled"
}
