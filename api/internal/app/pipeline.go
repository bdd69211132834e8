// Package app builds the detection pipeline from configuration.
package app

import (
	"go.uber.org/zap"

	"diff-finder/api/internal/compare"
	"diff-finder/api/internal/config"
	"diff-finder/api/internal/detector"
	"diff-finder/api/internal/detector/gemini"
	"diff-finder/api/internal/detector/gpt"
)

// Engines builds every provider engine; none of them talks to the network before the first request.
func Engines(cfg *config.Config) *detector.Engines {
	return &detector.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiThinkingBudget),
		OpenAI: gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIReasoningEffort),
	}
}

// NewPipeline selects the LLM_NAME engine and wraps it into compare.Service.
// A missing credential is only a warning: every detection then reports no differences.
func NewPipeline(cfg *config.Config, log *zap.Logger) (*compare.Service, error) {
	engine, err := Engines(cfg).GetEngine(cfg.LLMName)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey() == "" {
		log.Warn("provider API key is not set, detections will return no differences",
			zap.String("engine", engine.Name()))
	}
	log.Info("detector ready", zap.String("engine", engine.Name()), zap.String("model", engine.GetModel()))
	return compare.NewService(detector.NewService(engine, log)), nil
}
