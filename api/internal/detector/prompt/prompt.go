// Package prompt holds the texts and the JSON schema handed to the models.
package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DETECT = "detect"

	// FunctionName is the only function a model is allowed to call.
	FunctionName        = "report_differences"
	FunctionDescription = "Report every visual difference found between the two images."
)

//go:embed detect.system.txt
var DetectSystem string

//go:embed detect.user.txt
var DetectUser string

//go:embed detect.schema.json
var DetectSchema string

// LoadSystemPrompt reads <PROMPT_DIR>/<name>.system.txt, falling back to the embedded text.
func LoadSystemPrompt(name string) (string, error) {
	return load(name, "system")
}

// LoadUserPrompt reads <PROMPT_DIR>/<name>.user.txt, falling back to the embedded text.
func LoadUserPrompt(name string) (string, error) {
	return load(name, "user")
}

func load(name, tp string) (string, error) {
	if b, ok := readOverride(fmt.Sprintf("%s.%s.txt", name, tp)); ok {
		return strings.TrimSpace(string(b)), nil
	}
	switch name + "." + tp {
	case "detect.system":
		return strings.TrimSpace(DetectSystem), nil
	case "detect.user":
		return strings.TrimSpace(DetectUser), nil
	}
	return "", fmt.Errorf("prompt %q (%s) not found", name, tp)
}

// LoadPromptSchema returns a fresh copy of <name>.schema.json, so callers may mutate it.
func LoadPromptSchema(name string) (map[string]any, error) {
	raw, ok := readOverride(name + ".schema.json")
	if !ok {
		switch name {
		case DETECT:
			raw = []byte(DetectSchema)
		default:
			return nil, fmt.Errorf("unknown schema name: %s", name)
		}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("bad %s schema: %w", name, err)
	}
	return m, nil
}

// readOverride looks the file up in PROMPT_DIR, if set.
func readOverride(file string) ([]byte, bool) {
	dir := strings.TrimSpace(os.Getenv("PROMPT_DIR"))
	if dir == "" {
		return nil, false
	}
	b, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil || len(b) == 0 {
		return nil, false
	}
	return b, true
}
