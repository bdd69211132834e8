package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"diff-finder/api/internal/detector"
	"diff-finder/api/internal/detector/types"
)

type stubEngine struct {
	name  string
	diffs []types.Difference
	calls int
}

func (e *stubEngine) Name() string     { return e.name }
func (e *stubEngine) GetModel() string { return e.name + "-model" }
func (e *stubEngine) Detect(context.Context, types.DetectRequest) (types.DetectResponse, error) {
	e.calls++
	return types.DetectResponse{Differences: e.diffs}, nil
}

func str(s string) *string { return &s }

func TestEngineCommand_WithoutChoice(t *testing.T) {
	r, bot, _ := setup(t, nil)

	r.HandleUpdate(command("/engine gpt"))
	require.Equal(t, []string{textEngineFixed}, bot.texts())
}

func TestEngineCommand_SwitchesPerChat(t *testing.T) {
	r, bot, det := setup(t, nil)
	gem := &stubEngine{name: "gemini"}
	gpt := &stubEngine{name: "gpt", diffs: []types.Difference{{Label: str("lamp"), Box2D: []float64{0, 0, 100, 100}}}}
	r.Choice = NewEngineChoice(&detector.Engines{Gemini: gem, OpenAI: gpt}, gem)

	r.HandleUpdate(command("/engine"))
	r.HandleUpdate(command("/engine yandex"))
	r.HandleUpdate(command("/engine GPT"))
	require.Equal(t, []string{
		"Current engine: gemini (gemini-model)\nSwitch with /engine gemini or /engine gpt",
		textUnknownEngine,
		"✅ Engine: gpt (gpt-model)",
	}, bot.texts())

	r.HandleUpdate(photo("a", ""))
	r.HandleUpdate(photo("b", ""))
	r.Wait()

	require.Equal(t, 1, gpt.calls)
	require.Zero(t, gem.calls)
	require.Zero(t, det.count())
	require.Len(t, bot.photos(), 1)
	require.Equal(t, "Found 1 difference(s)\n1. lamp (100%)", bot.photos()[0].Caption)
}
