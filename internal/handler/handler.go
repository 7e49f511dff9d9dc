package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StyleSense/internal/auth"
	"StyleSense/internal/imagegen"
	"StyleSense/internal/llm"
	"StyleSense/internal/metrics"
	"StyleSense/internal/middleware"
	"StyleSense/internal/models"
	"StyleSense/internal/render"
	"StyleSense/internal/storage"
	"StyleSense/internal/stylist"
	"StyleSense/internal/trends"
)

// TrendSource reads interest over time for a keyword.
type TrendSource interface {
	InterestOverTime(ctx context.Context, keyword string) (trends.Interest, error)
}

// DailyTrends serves the latest trending-searches snapshot.
type DailyTrends interface {
	Snapshot() (trends.Snapshot, bool)
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (imagegen.Image, error)
}

// Dependencies wires a Handler. Daily may be nil.
// NewVisionRouter only uses Stylist, Logger, Metrics and MaxUploadBytes.
type Dependencies struct {
	Store       storage.Store
	Tokens      *auth.TokenIssuer
	Hasher      *auth.Hasher
	Stylist     *stylist.Service
	Trends      TrendSource
	Daily       DailyTrends
	Images      ImageGenerator
	Transcriber llm.Transcriber
	Sanitizer   *render.Sanitizer
	Metrics     metrics.Recorder
	Logger      *zap.Logger

	MaxUploadBytes  int64
	OutboundTimeout time.Duration
}

type Handler struct {
	Dependencies
	now func() time.Time
}

func New(deps Dependencies) *Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	return &Handler{Dependencies: deps, now: time.Now}
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

type SuccessResponse struct {
	Message string `json:"message" example:"User created successfully"`
}

// currentUser loads the authenticated user. On failure the response has been written.
func (h *Handler) currentUser(c *gin.Context) (models.User, bool) {
	username := middleware.Username(c)
	user, err := h.Store.GetUser(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return models.User{}, false
		}
		h.Logger.Error("failed to load user", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return models.User{}, false
	}
	return user, true
}

// sessionProfile is the stored profile with any per-request override applied.
func sessionProfile(stored models.StyleProfile, override *models.StyleProfile) models.StyleProfile {
	if override == nil {
		return stored
	}
	return stored.Merge(*override)
}

// outbound bounds a best-effort upstream call.
func (h *Handler) outbound(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.OutboundTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.OutboundTimeout)
}

func (h *Handler) recordUpstream(op string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	h.Metrics.RecordUpstream(op, outcome, time.Since(start))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Health godoc
// @Summary      헬스 체크
// @Tags         System
// @Produce      json
// @Success      200 {object} object{status=string}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
