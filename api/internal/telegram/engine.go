package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"diff-finder/api/internal/compare"
	"diff-finder/api/internal/detector"
)

// EngineChoice lets every chat switch the provider with /engine.
type EngineChoice struct {
	Engines *detector.Engines
	Manager *detector.Manager
}

func NewEngineChoice(engines *detector.Engines, def detector.Engine) *EngineChoice {
	return &EngineChoice{Engines: engines, Manager: detector.NewManager(def)}
}

// pipelineFor returns the comparer bound to the chat's engine.
func (r *Router) pipelineFor(chatID int64) Comparer {
	if r.Choice == nil {
		return r.Pipeline
	}
	return compare.NewService(detector.NewService(r.Choice.Manager.Get(chatID), r.Log))
}

func (r *Router) handleEngine(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	if r.Choice == nil {
		r.send(cid, textEngineFixed)
		return
	}
	name := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	if name == "" {
		cur := r.Choice.Manager.Get(cid)
		r.send(cid, fmt.Sprintf("Current engine: %s (%s)\nSwitch with /engine gemini or /engine gpt", cur.Name(), cur.GetModel()))
		return
	}
	eng, err := r.Choice.Engines.GetEngine(name)
	if err != nil {
		r.send(cid, textUnknownEngine)
		return
	}
	r.Choice.Manager.Set(cid, eng)
	r.Log.Info("engine switched", zap.Int64("chat_id", cid), zap.String("engine", eng.Name()))
	r.send(cid, fmt.Sprintf("✅ Engine: %s (%s)", eng.Name(), eng.GetModel()))
}
