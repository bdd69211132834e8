package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"diff-finder/api/internal/app"
	"diff-finder/api/internal/config"
	"diff-finder/api/internal/httpserver"
	"diff-finder/api/internal/logger"
	"diff-finder/api/internal/middleware"
	"diff-finder/api/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.GinMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if strings.TrimSpace(cfg.TelegramBotToken) == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}

	pipeline, err := app.NewPipeline(cfg, log)
	if err != nil {
		log.Fatal("pipeline", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal("telegram", zap.Error(err))
	}
	bot.Debug = false
	log.Info("authorized", zap.String("bot", bot.Self.UserName))

	router := telegram.NewRouter(bot, pipeline, cfg.MaxImageSide, log)

	// /engine переключает провайдера для отдельного чата
	engines := app.Engines(cfg)
	if def, err := engines.GetEngine(cfg.LLMName); err == nil {
		router.Choice = telegram.NewEngineChoice(engines, def)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)
	mux := gin.New()
	mux.Use(middleware.Recovery(log))
	mux.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// --- Choose mode: Webhook vs Polling ---
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		if err := registerWebhook(bot, mux, router, webhookURL, log); err != nil {
			log.Fatal("webhook", zap.Error(err))
		}
	} else {
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.Warn("delete webhook", zap.Error(err))
		}
		go runPolling(ctx, bot, router.Process, log)
	}

	if err := httpserver.Run(ctx, cfg.Addr(), mux, log); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
	router.Shutdown()
}

// registerWebhook points Telegram at <baseURL>/webhook/<hash> and routes updates to the router.
func registerWebhook(bot *tgbotapi.BotAPI, mux *gin.Engine, router *telegram.Router, baseURL string, log *zap.Logger) error {
	// секретный путь вебхука
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	mux.POST(path, func(c *gin.Context) {
		upd, err := bot.HandleUpdate(c.Request)
		if err != nil {
			log.Warn("webhook: bad update", zap.Error(err))
			c.Status(http.StatusBadRequest)
			return
		}
		// Telegram ждёт быстрый 200, обработка идёт асинхронно
		router.Dispatch(*upd)
		c.Status(http.StatusOK)
	})
	log.Info("webhook registered", zap.String("path", path))
	return nil
}
