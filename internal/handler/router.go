package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"StyleSense/internal/middleware"
)

type RouterConfig struct {
	InviteCode    string
	RateLimitAuth int
	RateLimitAI   int
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter builds the primary API.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.Logger), middleware.Metrics(h.Metrics))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	router.GET("/health", h.Health)
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/options", h.Options)

	authLimit := middleware.RateLimit(cfg.RateLimitAuth)
	router.POST("/signup", authLimit, middleware.InviteCodeMiddleware(cfg.InviteCode), h.Signup)
	router.POST("/login", authLimit, h.Login)

	protected := router.Group("/api").Use(middleware.AuthMiddleware(h.Tokens, false), middleware.RateLimit(cfg.RateLimitAI))
	{
		protected.GET("/profile", h.Profile)

		protected.POST("/studio/generate", h.GenerateContent)
		protected.POST("/studio/visualize", h.Visualize)

		protected.POST("/guide/advice", h.Advice)
		protected.POST("/guide/trend", h.TrendLookup)
		protected.GET("/trends/daily", h.DailyTrends)

		protected.POST("/chat", h.Chat)
		protected.POST("/transcribe", h.Transcribe)

		protected.GET("/history", h.History)

		protected.GET("/wardrobe", h.Wardrobe)
		protected.POST("/wardrobe/items", h.AddWardrobeItem)
		protected.POST("/wardrobe/outfit", h.MixAndMatch)

		protected.POST("/mirror/analyze", h.AnalyzeMirror)
	}

	router.GET("/ws/chat", middleware.AuthMiddleware(h.Tokens, true), h.ChatSocket)
	return router
}

// NewVisionRouter builds the standalone vision service. It has no auth and no persistence.
func NewVisionRouter(h *Handler, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.Logger), middleware.Metrics(h.Metrics))
	router.GET("/health", h.Health)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
	router.POST("/analyze", h.AnalyzeVision)
	return router
}
