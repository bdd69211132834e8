package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"diff-finder/api/internal/app"
	"diff-finder/api/internal/config"
	"diff-finder/api/internal/handle"
	"diff-finder/api/internal/httpserver"
	"diff-finder/api/internal/logger"
	"diff-finder/api/internal/server"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
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

	log.Info("starting diff-api",
		zap.String("version", Version),
		zap.String("git_commit", GitCommit),
		zap.String("llm", cfg.LLMName))

	pipeline, err := app.NewPipeline(cfg, log)
	if err != nil {
		log.Fatal("pipeline", zap.Error(err))
	}

	h := handle.New(pipeline, cfg.MaxImageSide, log)
	r := server.NewRouter(server.Options{
		Mode:           cfg.GinMode,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, h, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Run(ctx, cfg.Addr(), r, log); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
