package gpt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"diff-finder/api/internal/detector"
	"diff-finder/api/internal/detector/prompt"
	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/util"
)

func (e *Engine) Detect(ctx context.Context, in types.DetectRequest) (types.DetectResponse, error) {
	if e.APIKey == "" {
		return types.DetectResponse{}, fmt.Errorf("openai: OPENAI_API_KEY: %w", detector.ErrEmptyAPIKey)
	}

	url1, err := dataURL(in.Image1)
	if err != nil {
		return types.DetectResponse{}, err
	}
	url2, err := dataURL(in.Image2)
	if err != nil {
		return types.DetectResponse{}, err
	}

	system, err := prompt.LoadSystemPrompt(prompt.DETECT)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("openai detect: %w", err)
	}
	user, err := prompt.LoadUserPrompt(prompt.DETECT)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("openai detect: %w", err)
	}
	schema, err := prompt.LoadPromptSchema(prompt.DETECT)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("openai detect: %w", err)
	}
	util.FixJSONSchemaStrict(schema)

	req := openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: user},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: url1, Detail: openai.ImageURLDetailHigh}},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: url2, Detail: openai.ImageURLDetailHigh}},
				},
			},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        prompt.FunctionName,
				Description: prompt.FunctionDescription,
				Strict:      true,
				Parameters:  schema,
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: prompt.FunctionName},
		},
		ReasoningEffort: e.ReasoningEffort,
	}

	resp, err := e.client().CreateChatCompletion(ctx, req)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("openai detect: %w", err)
	}
	return extract(resp)
}

// extract decodes the arguments of the first report_differences tool call.
func extract(resp openai.ChatCompletionResponse) (types.DetectResponse, error) {
	if len(resp.Choices) == 0 {
		return types.DetectResponse{}, fmt.Errorf("openai detect: no choices")
	}
	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Function.Name != prompt.FunctionName {
			continue
		}
		var args struct {
			Differences []types.Difference `json:"differences"`
		}
		if s := strings.TrimSpace(tc.Function.Arguments); s != "" {
			if err := json.Unmarshal([]byte(s), &args); err != nil {
				return types.DetectResponse{}, fmt.Errorf("openai detect: bad arguments %q: %w", truncate(s, 256), err)
			}
		}
		if args.Differences == nil {
			args.Differences = []types.Difference{}
		}
		return types.DetectResponse{Differences: args.Differences}, nil
	}
	return types.DetectResponse{}, fmt.Errorf("openai detect: %w", detector.ErrNoFunctionCall)
}

func dataURL(img types.Image) (string, error) {
	mime := img.MIME
	if mime == "" {
		mime = util.SniffMimeHTTP(img.Data)
	}
	if !isOpenAIImageMIME(mime) {
		return "", fmt.Errorf("openai detect: unsupported MIME %s (need image/jpeg|png|webp)", mime)
	}
	return util.MakeDataURL(mime, base64.StdEncoding.EncodeToString(img.Data)), nil
}
