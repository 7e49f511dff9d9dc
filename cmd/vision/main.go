// Command vision is the standalone image analysis service. It keeps no state and needs no login.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"StyleSense/internal/config"
	"StyleSense/internal/handler"
	"StyleSense/internal/llm"
	"StyleSense/internal/logger"
	"StyleSense/internal/metrics"
	"StyleSense/internal/server"
	"StyleSense/internal/stylist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	l, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.New(ctx, cfg)
	if err != nil {
		l.Fatal("failed to create llm client", zap.Error(err))
	}
	if !cfg.AIConfigured() {
		l.Warn("no LLM API key configured, /analyze will return error-only results")
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewCollector(reg)
	h := handler.New(handler.Dependencies{
		Stylist:        stylist.NewService(client, rec, l, cfg.LLMTimeout),
		Metrics:        rec,
		Logger:         l,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	if err := server.Run(ctx, ":"+cfg.VisionPort, handler.NewVisionRouter(h, metrics.Handler(reg)), cfg.LLMTimeout+cfg.OutboundTimeout, l); err != nil {
		l.Fatal("vision server exited", zap.Error(err))
	}
}
