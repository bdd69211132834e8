package detector

import (
	"context"
	"errors"
	"fmt"

	"diff-finder/api/internal/detector/types"
)

var (
	// ErrNoFunctionCall is returned when the model answered without calling report_differences.
	ErrNoFunctionCall = errors.New("model did not call report_differences")
	// ErrEmptyAPIKey is returned by an engine built without a credential.
	ErrEmptyAPIKey = errors.New("api key is empty")
)

type Engine interface {
	Name() string
	GetModel() string
	Detect(ctx context.Context, in types.DetectRequest) (types.DetectResponse, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch llmName {
	case "gemini":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'gemini' or 'gpt'", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("engine %q is not configured", llmName)
	}
	return eng, nil
}
