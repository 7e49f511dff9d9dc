package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StyleSense/internal/catalog"
	"StyleSense/internal/middleware"
	"StyleSense/internal/models"
	"StyleSense/internal/storage"
	"StyleSense/internal/stylist"
)

type WardrobeResponse struct {
	Items     []models.WardrobeItem    `json:"items"`
	Groups    []models.CategoryGroup   `json:"groups"`
	Analytics models.WardrobeAnalytics `json:"analytics"`
}

type AddItemRequest struct {
	Item     string `json:"item" binding:"required" example:"White Linen Shirt"`
	Category string `json:"category" binding:"required" example:"Top"`
}

type OutfitRequest struct {
	Occasion string               `json:"occasion" example:"Date Night"`
	Profile  *models.StyleProfile `json:"profile,omitempty"`
}

type OutfitResponse struct {
	Occasion    string `json:"occasion"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
	Degraded    bool   `json:"degraded"`
}

// Wardrobe godoc
// @Summary      옷장 조회
// @Description  카테고리별로 묶은 옷장 아이템과 통계(총 개수, 카테고리별 개수, 가장 많은 카테고리)를 반환합니다.
// @Tags         Wardrobe
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.WardrobeResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/wardrobe [get]
func (h *Handler) Wardrobe(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	items := user.Wardrobe
	if items == nil {
		items = []models.WardrobeItem{}
	}
	c.JSON(http.StatusOK, WardrobeResponse{
		Items:     items,
		Groups:    models.GroupWardrobe(items),
		Analytics: models.AnalyzeWardrobe(items),
	})
}

// AddWardrobeItem godoc
// @Summary      옷장 아이템 추가
// @Tags         Wardrobe
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.AddItemRequest true "아이템 정보"
// @Success      201 {object} handler.WardrobeResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 카테고리"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/wardrobe/items [post]
func (h *Handler) AddWardrobeItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item and category are required"})
		return
	}
	req.Item = strings.TrimSpace(req.Item)
	if req.Item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item and category are required"})
		return
	}
	if !models.IsWardrobeCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be one of: " + strings.Join(models.WardrobeCategories, ", ")})
		return
	}

	username := middleware.Username(c)
	item := models.WardrobeItem{Item: req.Item, Category: req.Category}
	if err := h.Store.AddWardrobeItem(c.Request.Context(), username, item); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}
		h.Logger.Error("failed to add wardrobe item", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save wardrobe item"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, WardrobeResponse{
		Items:     user.Wardrobe,
		Groups:    models.GroupWardrobe(user.Wardrobe),
		Analytics: models.AnalyzeWardrobe(user.Wardrobe),
	})
}

// MixAndMatch godoc
// @Summary      믹스 앤 매치 코디 추천
// @Description  옷장에 있는 아이템만 사용하여 상황에 맞는 코디를 추천합니다.
// @Tags         Wardrobe
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.OutfitRequest false "상황 (기본값: Weekend Casual)"
// @Success      200 {object} handler.OutfitResponse
// @Failure      400 {object} handler.ErrorResponse "옷장이 비어 있음"
// @Router       /api/wardrobe/outfit [post]
func (h *Handler) MixAndMatch(c *gin.Context) {
	var req OutfitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	occasion := orDefault(req.Occasion, catalog.First(catalog.Default().OutfitOccasion))

	reply, err := h.Stylist.MixAndMatch(c.Request.Context(), sessionProfile(user.Profile, req.Profile), occasion, user.Wardrobe)
	if err != nil {
		if errors.Is(err, stylist.ErrEmptyWardrobe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": stylist.MsgEmptyWardrobe})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, OutfitResponse{
		Occasion:    occasion,
		Content:     reply.Content,
		ContentHTML: h.Sanitizer.HTML(reply.Content),
		Degraded:    reply.Degraded,
	})
}
