package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "StyleSense/docs"
	"StyleSense/internal/auth"
	"StyleSense/internal/config"
	"StyleSense/internal/handler"
	"StyleSense/internal/imagegen"
	"StyleSense/internal/llm"
	"StyleSense/internal/logger"
	"StyleSense/internal/metrics"
	"StyleSense/internal/outbound"
	"StyleSense/internal/render"
	"StyleSense/internal/server"
	"StyleSense/internal/storage"
	"StyleSense/internal/stylist"
	"StyleSense/internal/trends"
)

// @title           StyleSense API
// @version         1.0
// @description     AI 패션 스타일리스트 API
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
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

	if err := run(cfg, l); err != nil {
		l.Fatal("api server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, l *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDefaultJWTSecret() {
		l.Warn("JWT_SECRET_KEY not set, using the default key")
	}
	if !cfg.AIConfigured() {
		l.Warn("no LLM API key configured, AI features will return inline errors", zap.String("provider", cfg.LLMProvider))
	}
	if err := outbound.ValidateURL(cfg.ImageGenURL); err != nil {
		return err
	}

	store, err := storage.Open(cfg.StoreDriver, storagePath(cfg), l)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := llm.New(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	httpClient := outbound.NewSafeClient(cfg.OutboundTimeout)
	daily := trends.NewDaily(httpClient, cfg.TrendsDailyGeo, l)
	if err := daily.Start(cfg.TrendsRefreshInterval); err != nil {
		return err
	}
	defer daily.Stop()

	h := handler.New(handler.Dependencies{
		Store:   store,
		Tokens:  auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Hasher:  auth.NewHasher(cfg.PasswordScheme),
		Stylist: stylist.NewService(client, rec, l, cfg.LLMTimeout),
		Trends: trends.NewClient(trends.Options{
			HL:        cfg.TrendsHL,
			Geo:       cfg.TrendsGeo,
			Timeframe: cfg.TrendsTimeframe,
		}),
		Daily:           daily,
		Images:          imagegen.NewClient(httpClient, cfg.ImageGenURL, cfg.ImageGenToken),
		Transcriber:     llm.NewSpeechTranscriber(cfg.GoogleCredentialsFile, cfg.SpeechLanguage),
		Sanitizer:       render.NewSanitizer(),
		Metrics:         rec,
		Logger:          l,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		OutboundTimeout: cfg.OutboundTimeout,
	})
	router := handler.NewRouter(h, handler.RouterConfig{
		InviteCode:     cfg.SignupInviteCode,
		RateLimitAuth:  cfg.RateLimitAuth,
		RateLimitAI:    cfg.RateLimitAI,
		MetricsHandler: metrics.Handler(reg),
	})

	// studio generation runs two LLM calls in parallel, each bounded by LLM_TIMEOUT
	return server.Run(ctx, ":"+cfg.ServerPort, router, cfg.LLMTimeout+cfg.OutboundTimeout, l)
}

func storagePath(cfg *config.Config) string {
	if cfg.StoreDriver == storage.DriverSQLite {
		return cfg.SQLitePath
	}
	return cfg.DataFile
}
