/**
* Name: 			studio.go
* Description: 		콘텐츠 스튜디오 핸들러
* Workflow: 		스타일 콘텐츠 생성 + 지속가능성 점수 → 기록 저장, 이미지 시각화
 */
package handler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"StyleSense/internal/catalog"
	"StyleSense/internal/imagegen"
	"StyleSense/internal/middleware"
	"StyleSense/internal/models"
	"StyleSense/internal/stylist"
)

type StudioRequest struct {
	Topic    string               `json:"topic" binding:"required" example:"Summer beach party outfit"`
	Vibes    []string             `json:"vibes" example:"Casual,Boho"`
	Mood     string               `json:"mood" example:"Festive"`
	Platform string               `json:"platform" example:"Instagram"`
	Language string               `json:"language" example:"English"`
	Weather  string               `json:"weather" example:"Sunny & Hot"`
	Occasion string               `json:"occasion" example:"Party"`
	Profile  *models.StyleProfile `json:"profile,omitempty"`
}

func (r StudioRequest) styleRequest() stylist.StyleRequest {
	opts := catalog.Default()
	return stylist.StyleRequest{
		Topic:    r.Topic,
		Vibes:    stylist.NormalizeVibes(r.Vibes),
		Mood:     orDefault(r.Mood, catalog.First(opts.Moods)),
		Platform: orDefault(r.Platform, catalog.First(opts.Platforms)),
		Language: orDefault(r.Language, catalog.First(opts.Languages)),
		Weather:  orDefault(r.Weather, catalog.First(opts.Weather)),
		Occasion: orDefault(r.Occasion, catalog.First(opts.Occasions)),
	}
}

type SustainabilityResponse struct {
	stylist.SustainabilityView
	Degraded bool `json:"degraded"`
}

type StudioResponse struct {
	ID             string                 `json:"id"`
	Topic          string                 `json:"topic" example:"Summer beach party outfit for Party"`
	Content        string                 `json:"content"`
	ContentHTML    string                 `json:"content_html"`
	Degraded       bool                   `json:"degraded"`
	Sustainability SustainabilityResponse `json:"sustainability"`
	ImagePrompt    string                 `json:"image_prompt"`
	Timestamp      string                 `json:"timestamp"`
}

// GenerateContent godoc
// @Summary      스타일 콘텐츠 생성
// @Description  주제, 플랫폼, 분위기 등을 바탕으로 패션 콘텐츠를 생성하고 지속가능성 점수를 계산한 뒤 기록에 저장합니다.
// @Tags         Studio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.StudioRequest true "스튜디오 요청"
// @Success      200 {object} handler.StudioResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/studio/generate [post]
func (h *Handler) GenerateContent(c *gin.Context) {
	var req StudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a topic."})
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	profile := sessionProfile(user.Profile, req.Profile)
	sr := req.styleRequest()

	var (
		wg        sync.WaitGroup
		reply     stylist.Reply
		score     models.SustainabilityScore
		scoreFell bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		reply = h.Stylist.GenerateStyleContent(ctx, sr, profile)
	}()
	go func() {
		defer wg.Done()
		// scored on the raw topic, without the occasion
		score, scoreFell = h.Stylist.SustainabilityScore(ctx, sr.Topic)
	}()
	wg.Wait()

	entry := models.HistoryEntry{
		ID:        uuid.NewString(),
		User:      user.Username,
		Topic:     sr.FullTopic(),
		Platform:  sr.Platform,
		Language:  sr.Language,
		Content:   reply.Content,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	if err := h.Store.AppendHistory(ctx, entry); err != nil {
		h.Logger.Error("failed to save history", zap.String("username", user.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save history"})
		return
	}

	c.JSON(http.StatusOK, StudioResponse{
		ID:          entry.ID,
		Topic:       entry.Topic,
		Content:     reply.Content,
		ContentHTML: h.Sanitizer.HTML(reply.Content),
		Degraded:    reply.Degraded,
		Sustainability: SustainabilityResponse{
			SustainabilityView: stylist.NewSustainabilityView(score),
			Degraded:           scoreFell,
		},
		ImagePrompt: stylist.ImagePrompt(sr),
		Timestamp:   entry.Timestamp,
	})
}

// Visualize godoc
// @Summary      코디 이미지 생성
// @Description  스튜디오 요청으로 이미지 프롬프트를 만들어 이미지 생성 모델을 호출합니다. 최선 노력(best effort) 방식입니다.
// @Tags         Studio
// @Accept       json
// @Produce      image/png
// @Security     BearerAuth
// @Param        request body handler.StudioRequest true "스튜디오 요청"
// @Success      200 {file} file "생성된 이미지"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse "이미지 생성 실패"
// @Router       /api/studio/visualize [post]
func (h *Handler) Visualize(c *gin.Context) {
	var req StudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a topic."})
		return
	}

	prompt := stylist.ImagePrompt(req.styleRequest())
	ctx, cancel := h.outbound(c.Request.Context())
	defer cancel()

	start := time.Now()
	img, err := h.Images.Generate(ctx, prompt)
	h.recordUpstream("image_generation", start, err)
	if err != nil {
		if !errors.Is(err, imagegen.ErrUnavailable) {
			h.Logger.Error("image generation failed", zap.Error(err))
		} else {
			h.Logger.Warn("image generation unavailable", zap.String("username", middleware.Username(c)), zap.Error(err))
		}
		h.Metrics.RecordDegraded("image_generation")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not generate image. API busy or unauthorized."})
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
