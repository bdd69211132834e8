package telegram

import (
	"context"
	"image"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"diff-finder/api/internal/compare"
)

// Bot is the part of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Comparer runs the detection pipeline for one pair.
type Comparer interface {
	Run(ctx context.Context, img1, img2 image.Image) (*compare.Outcome, error)
}

type Router struct {
	Bot      Bot
	Pipeline Comparer
	Choice   *EngineChoice // per-chat engine, overrides Pipeline when set
	Pending  *PendingStore
	MaxSide  int
	Log      *zap.Logger

	// Debounce groups album items; zero means the default.
	Debounce time.Duration
	HTTP     *http.Client

	batches sync.Map // key -> *photoBatch
	wg      sync.WaitGroup

	mu      sync.Mutex
	closing bool
}

func NewRouter(bot Bot, pipeline Comparer, maxSide int, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		Bot:      bot,
		Pipeline: pipeline,
		Pending:  NewPendingStore(pendingTTL),
		MaxSide:  maxSide,
		Log:      log,
		Debounce: debounce,
		HTTP:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, textUsage)
	case "cancel":
		if r.Pending.Delete(cid) {
			r.send(cid, textCancelled)
		} else {
			r.send(cid, textNothingPending)
		}
	case "engine":
		r.handleEngine(upd.Message)
	case "health":
		r.send(cid, "✅ OK")
	default:
		r.send(cid, textUnknownCommand)
	}
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}

	msg := *upd.Message
	switch {
	case len(msg.Photo) > 0:
		r.acceptPhoto(msg, msg.Photo[len(msg.Photo)-1].FileID)
	case msg.Document != nil:
		r.acceptDocument(msg)
	}
}

// Process handles upd in the caller's goroutine, keeping the order of a polling loop.
func (r *Router) Process(upd tgbotapi.Update) {
	if !r.acquire(upd) {
		return
	}
	defer r.wg.Done()
	r.HandleUpdate(upd)
}

// Dispatch handles upd in the background so a webhook can answer at once.
func (r *Router) Dispatch(upd tgbotapi.Update) {
	if !r.acquire(upd) {
		return
	}
	go func() {
		defer r.wg.Done()
		r.HandleUpdate(upd)
	}()
}

// acquire registers an update with the wait group; updates arriving after Shutdown are dropped.
func (r *Router) acquire(upd tgbotapi.Update) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closing {
		r.Log.Warn("telegram: update dropped on shutdown", zap.Int("update_id", upd.UpdateID))
		return false
	}
	r.wg.Add(1)
	return true
}

// Wait blocks until every dispatched update and started comparison has replied.
func (r *Router) Wait() {
	r.wg.Wait()
}

// Shutdown stops accepting updates and waits for the ones in flight.
func (r *Router) Shutdown() {
	r.mu.Lock()
	r.closing = true
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) SendError(chatID int64, err error) {
	r.Log.Error("telegram compare", zap.Int64("chat_id", chatID), zap.Error(err))
	r.send(chatID, "An error occurred: "+err.Error())
}
