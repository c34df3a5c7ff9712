package extract

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/riverfjs/mdlite-go/internal/record"
)

// ErrEmptyOutput is returned when the model reply holds no usable pairs.
var ErrEmptyOutput = errors.New("model returned no qa pairs")

// ErrInvalidJSON is returned when no JSON document can be found in the reply.
var ErrInvalidJSON = errors.New("model reply is not valid json")

// PostProcess 从模型输出中解析问答对，容忍代码围栏和前后说明文字。
//
// 接受 {"qa_pairs": [...]}、{"pairs": [...]} 或顶层数组；
// 字段名 question/q 与 answer/a 均可。
func PostProcess(raw string, maxPairs int) ([]record.QAPair, error) {
	body := extractJSON(raw)
	if body == "" {
		if strings.TrimSpace(raw) == "" {
			return nil, ErrEmptyOutput
		}
		return nil, ErrInvalidJSON
	}

	doc := gjson.Parse(body)
	list := doc
	if doc.IsObject() {
		list = doc.Get("qa_pairs")
		if !list.Exists() {
			list = doc.Get("pairs")
		}
	}
	if !list.IsArray() {
		return nil, ErrEmptyOutput
	}

	var pairs []record.QAPair
	list.ForEach(func(_, item gjson.Result) bool {
		q := strings.TrimSpace(firstString(item, "question", "q"))
		a := strings.TrimSpace(firstString(item, "answer", "a"))
		if q != "" && a != "" {
			pairs = append(pairs, record.QAPair{Question: q, Answer: a})
		}
		return maxPairs <= 0 || len(pairs) < maxPairs
	})
	if len(pairs) == 0 {
		return nil, ErrEmptyOutput
	}
	return pairs, nil
}

func firstString(item gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := item.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// extractJSON strips ``` fences and returns the outermost JSON value in s.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		s = strings.TrimSpace(rest)
	}
	if gjson.Valid(s) {
		return s
	}
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return ""
	}
	if candidate := s[start : end+1]; gjson.Valid(candidate) {
		return candidate
	}
	return ""
}
