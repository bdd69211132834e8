package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GIN_MODE", "MAX_UPLOAD_BYTES", "MAX_IMAGE_SIDE", "LLM_NAME",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_THINKING_BUDGET",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_REASONING_EFFORT",
		"TELEGRAM_BOT_TOKEN", "WEBHOOK_URL", "CONFIG_FILE",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":5000", cfg.Addr())
	require.Equal(t, "debug", cfg.GinMode)
	require.Equal(t, int64(16*1024*1024), cfg.MaxUploadBytes)
	require.Equal(t, 1024, cfg.MaxImageSide)
	require.Equal(t, "gemini", cfg.LLMName)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, int32(2048), cfg.GeminiThinkingBudget)
	require.Equal(t, "o4-mini", cfg.OpenAIModel)
	require.Equal(t, "medium", cfg.OpenAIReasoningEffort)
	require.Empty(t, cfg.APIKey())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_NAME", "gpt")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("GEMINI_THINKING_BUDGET", "512")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "sk-test", cfg.APIKey())
	require.Equal(t, int64(1024), cfg.MaxUploadBytes)
	require.Equal(t, int32(512), cfg.GeminiThinkingBudget)
}

func TestLoad_YAMLFileUnderEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini_model: gemini-2.5-pro\nmax_image_side: 512\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MAX_IMAGE_SIDE", "256")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	require.Equal(t, 256, cfg.MaxImageSide)
}

func TestLoad_MissingYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_NAME", "yandex")
	_, err := Load()
	require.ErrorContains(t, err, "LLM_NAME")

	clearEnv(t)
	t.Setenv("MAX_IMAGE_SIDE", "0")
	_, err = Load()
	require.ErrorContains(t, err, "MAX_IMAGE_SIDE")
}
