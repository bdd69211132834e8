package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"diff-finder/api/internal/detector"
	"diff-finder/api/internal/detector/prompt"
	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/util"
)

// generator is the part of *genai.Models the engine needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Engine struct {
	APIKey         string
	Model          string
	ThinkingBudget int32

	mu  sync.Mutex
	gen generator
}

func New(apiKey, model string, thinkingBudget int32) *Engine {
	return &Engine{
		APIKey:         strings.TrimSpace(apiKey),
		Model:          strings.TrimSpace(model),
		ThinkingBudget: thinkingBudget,
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// client создаётся лениво и переиспользуется между запросами.
func (e *Engine) client(ctx context.Context) (generator, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != nil {
		return e.gen, nil
	}
	if e.APIKey == "" {
		return nil, fmt.Errorf("gemini: GEMINI_API_KEY: %w", detector.ErrEmptyAPIKey)
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	e.gen = cl.Models
	return e.gen, nil
}

// Detect sends both images with a forced report_differences call.
func (e *Engine) Detect(ctx context.Context, in types.DetectRequest) (types.DetectResponse, error) {
	gen, err := e.client(ctx)
	if err != nil {
		return types.DetectResponse{}, err
	}

	system, err := prompt.LoadSystemPrompt(prompt.DETECT)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("gemini detect: %w", err)
	}
	user, err := prompt.LoadUserPrompt(prompt.DETECT)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("gemini detect: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(user),
			genai.NewPartFromBytes(in.Image1.Data, mimeOf(in.Image1)),
			genai.NewPartFromBytes(in.Image2.Data, mimeOf(in.Image2)),
		}, genai.RoleUser),
	}

	resp, err := gen.GenerateContent(ctx, e.Model, contents, e.config(system))
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("gemini detect: %w", err)
	}
	return extract(resp)
}

func (e *Engine) config(system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        prompt.FunctionName,
				Description: prompt.FunctionDescription,
				Parameters:  DetectSchema(),
			}},
		}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{prompt.FunctionName},
			},
		},
	}
	if e.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(e.ThinkingBudget)}
	}
	return cfg
}

// extract decodes the arguments of the first report_differences call.
func extract(resp *genai.GenerateContentResponse) (types.DetectResponse, error) {
	if resp == nil {
		return types.DetectResponse{}, fmt.Errorf("gemini detect: empty response")
	}
	for _, fc := range resp.FunctionCalls() {
		if fc == nil || fc.Name != prompt.FunctionName {
			continue
		}
		out := types.DetectResponse{Differences: []types.Difference{}}
		raw, ok := fc.Args["differences"]
		if !ok || raw == nil {
			return out, nil
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return types.DetectResponse{}, fmt.Errorf("gemini detect: args: %w", err)
		}
		if err := json.Unmarshal(b, &out.Differences); err != nil {
			return types.DetectResponse{}, fmt.Errorf("gemini detect: bad differences: %w", err)
		}
		return out, nil
	}
	return types.DetectResponse{}, fmt.Errorf("gemini detect: %w", detector.ErrNoFunctionCall)
}

func mimeOf(img types.Image) string {
	if img.MIME != "" {
		return img.MIME
	}
	return util.SniffMimeHTTP(img.Data)
}
