package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StyleSense/internal/catalog"
	"StyleSense/internal/models"
	"StyleSense/internal/stylist"
	"StyleSense/internal/trends"
)

type AdviceRequest struct {
	Kind    string               `json:"kind" binding:"required,oneof=dos_donts trends" example:"dos_donts"`
	Profile *models.StyleProfile `json:"profile,omitempty"`
}

type AdviceResponse struct {
	Kind        string `json:"kind"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
	Degraded    bool   `json:"degraded"`
}

type TrendRequest struct {
	Keyword string `json:"keyword" example:"Oversized Blazer"`
}

type TrendResponse struct {
	Keyword     string         `json:"keyword"`
	Points      []trends.Point `json:"points"`
	Insight     string         `json:"insight,omitempty"`
	InsightHTML string         `json:"insight_html,omitempty"`
	Message     string         `json:"message,omitempty"`
	Degraded    bool           `json:"degraded"`
}

// Advice godoc
// @Summary      스타일 가이드 조언
// @Description  프로필에 맞춘 DO/DON'T 목록(dos_donts) 또는 추천 트렌드(trends)를 생성합니다.
// @Tags         Guide
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.AdviceRequest true "조언 종류"
// @Success      200 {object} handler.AdviceResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 종류 또는 프로필 없음"
// @Router       /api/guide/advice [post]
func (h *Handler) Advice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of: " + strings.Join(catalog.Default().AdviceKinds, ", ")})
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	reply, err := h.Stylist.StaticAdvice(c.Request.Context(), req.Kind, sessionProfile(user.Profile, req.Profile))
	if err != nil {
		if errors.Is(err, stylist.ErrNoProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": stylist.MsgNoProfile})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, AdviceResponse{
		Kind:        req.Kind,
		Content:     reply.Content,
		ContentHTML: h.Sanitizer.HTML(reply.Content),
		Degraded:    reply.Degraded,
	})
}

// TrendLookup godoc
// @Summary      트렌드 분석
// @Description  키워드의 최근 12개월 검색 관심도를 조회하고 최근 5개 값으로 AI 인사이트를 생성합니다.
// @Tags         Guide
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.TrendRequest false "키워드 (기본값: Oversized Blazer)"
// @Success      200 {object} handler.TrendResponse
// @Router       /api/guide/trend [post]
func (h *Handler) TrendLookup(c *gin.Context) {
	var req TrendRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}
	keyword := orDefault(strings.TrimSpace(req.Keyword), catalog.DefaultTrendKeyword)

	ctx, cancel := h.outbound(c.Request.Context())
	start := time.Now()
	interest, err := h.Trends.InterestOverTime(ctx, keyword)
	cancel()
	h.recordUpstream("trends", start, err)
	if err != nil {
		if !errors.Is(err, trends.ErrNoData) {
			h.Logger.Warn("trend lookup failed", zap.String("keyword", keyword), zap.Error(err))
		}
		h.Metrics.RecordDegraded("trends")
		c.JSON(http.StatusOK, TrendResponse{
			Keyword:  keyword,
			Points:   []trends.Point{},
			Message:  "Could not fetch data. Try a different keyword.",
			Degraded: true,
		})
		return
	}

	insight := h.Stylist.TrendInsight(c.Request.Context(), keyword, interest.Tail(5))
	c.JSON(http.StatusOK, TrendResponse{
		Keyword:     keyword,
		Points:      interest.Points,
		Insight:     insight.Content,
		InsightHTML: h.Sanitizer.HTML(insight.Content),
		Degraded:    insight.Degraded,
	})
}

// DailyTrends godoc
// @Summary      오늘의 인기 검색어
// @Description  주기적으로 갱신되는 인기 검색어 스냅샷을 반환합니다.
// @Tags         Guide
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} trends.Snapshot
// @Failure      503 {object} handler.ErrorResponse "아직 스냅샷 없음"
// @Router       /api/trends/daily [get]
func (h *Handler) DailyTrends(c *gin.Context) {
	if h.Daily == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Trending searches not available yet"})
		return
	}
	snap, ok := h.Daily.Snapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Trending searches not available yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
