package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/record"
)

// MockLLM 不调用外部模型：每个非空段落生成一个问答对，便于本地调试。
type MockLLM struct{}

// Complete 对 SOURCE 后的每个段落生成一个问答对，输出带代码围栏的 JSON。
func (MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	source := prompt.User
	if i := strings.Index(source, sourceMarker); i >= 0 {
		source = source[i+len(sourceMarker):]
	}
	var pairs []record.QAPair
	for _, para := range strings.Split(source, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		title := record.DeriveTitle(para)
		pairs = append(pairs, record.QAPair{
			Question: "What does the text say about \"" + title + "\"?",
			Answer:   para,
		})
	}
	data, err := json.Marshal(map[string]any{"qa_pairs": pairs})
	if err != nil {
		return "", err
	}
	return "```json\n" + string(data) + "\n```", nil
}
