package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"diff-finder/api/internal/config"
)

func TestNewPipeline_WarnsWithoutKey(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &config.Config{LLMName: "gemini", GeminiModel: "gemini-2.5-flash"}

	svc, err := NewPipeline(cfg, zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, svc)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestNewPipeline_SelectsEngine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &config.Config{LLMName: "gpt", OpenAIAPIKey: "sk", OpenAIModel: "o4-mini"}

	_, err := NewPipeline(cfg, zap.New(core))
	require.NoError(t, err)
	require.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	ready := logs.FilterMessage("detector ready").All()
	require.Len(t, ready, 1)
	require.Equal(t, "gpt", ready[0].ContextMap()["engine"])
	require.Equal(t, "o4-mini", ready[0].ContextMap()["model"])
}

func TestNewPipeline_UnknownEngine(t *testing.T) {
	_, err := NewPipeline(&config.Config{LLMName: "yandex"}, zap.NewNop())
	require.Error(t, err)
}
