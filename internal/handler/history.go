package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StyleSense/internal/middleware"
	"StyleSense/internal/models"
)

type HistoryResponse struct {
	History []models.HistoryEntry `json:"history"`
}

// History godoc
// @Summary      생성 기록 조회
// @Description  로그인한 사용자의 스튜디오 생성 기록을 최신순으로 반환합니다.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.HistoryResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/history [get]
func (h *Handler) History(c *gin.Context) {
	username := middleware.Username(c)
	entries, err := h.Store.ListHistory(c.Request.Context(), username)
	if err != nil {
		h.Logger.Error("failed to list history", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	// stored oldest first
	out := make([]models.HistoryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	c.JSON(http.StatusOK, HistoryResponse{History: out})
}
