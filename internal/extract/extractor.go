package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/riverfjs/mdlite-go/internal/record"
)

// Extractor 负责调用模型并在输出无法解析时重试。
type Extractor struct {
	llm         LLMClient
	MaxAttempts int
	Backoff     time.Duration
	Logger      *log.Logger
}

// NewExtractor 创建默认重试 3 次、间隔 500ms 的 Extractor。
func NewExtractor(llm LLMClient) (*Extractor, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Extractor{llm: llm, MaxAttempts: 3, Backoff: 500 * time.Millisecond}, nil
}

// Extract 返回从 req.Content 抽取的问答对。
func (e *Extractor) Extract(ctx context.Context, req Request) ([]record.QAPair, error) {
	if len(req.Content) == 0 {
		return nil, errors.New("content is empty")
	}
	attempts := max(e.MaxAttempts, 1)
	prompt := BuildPrompt(req)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := e.llm.Complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			e.infof("extract attempt %d/%d: completion failed: %v", attempt, attempts, err)
		} else {
			pairs, perr := PostProcess(raw, req.MaxPairs)
			if perr == nil {
				return pairs, nil
			}
			lastErr = perr
			e.infof("extract attempt %d/%d: %v", attempt, attempts, perr)
			prompt = BuildRetryPrompt(req, raw, perr)
		}
		if attempt < attempts && e.Backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.Backoff * time.Duration(attempt)):
			}
		}
	}
	return nil, fmt.Errorf("extract failed after %d attempts: %w", attempts, lastErr)
}

func (e *Extractor) infof(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}
