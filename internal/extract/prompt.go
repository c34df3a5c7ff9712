package extract

import (
	"fmt"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/types"
	"github.com/riverfjs/mdlite-go/internal/util"
)

const sourceMarker = "SOURCE:\n"

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message 用于少量历史（可选）。
type Message struct {
	Role    string
	Content string
}

// Request 描述一次抽取的要求。
type Request struct {
	Content  string
	MaxPairs int
	Focus    string
}

// BuildPrompt 生成抽取提示词。
func BuildPrompt(req Request) Prompt {
	var sb strings.Builder
	sb.WriteString("You build question/answer training data from a source text.\n")
	sb.WriteString("Rules:\n")
	if req.MaxPairs > 0 {
		sb.WriteString(fmt.Sprintf("- Produce at most %d pairs.\n", req.MaxPairs))
	}
	sb.WriteString("- Every answer must be supported by the source text.\n")
	sb.WriteString("- Write questions and answers in the language of the source text.\n")
	if util.DetectDirection(req.Content) == types.RTL {
		sb.WriteString("- The source is written in a right-to-left script; keep it, do not transliterate.\n")
	}
	if req.Focus != "" {
		sb.WriteString(fmt.Sprintf("- Focus on: %s\n", req.Focus))
	}
	sb.WriteString(`- Reply with JSON only: {"qa_pairs":[{"question":"...","answer":"..."}]}` + "\n")

	return Prompt{
		System: sb.String(),
		User:   sourceMarker + req.Content,
	}
}

// BuildRetryPrompt 在上一次输出无法解析时追加纠正说明。
func BuildRetryPrompt(req Request, prevOutput string, reason error) Prompt {
	p := BuildPrompt(req)
	p.History = []Message{
		{Role: "user", Content: p.User},
		{Role: "assistant", Content: prevOutput},
	}
	p.User = fmt.Sprintf("The previous reply could not be used (%v). Reply again with the JSON object only.", reason)
	return p
}
