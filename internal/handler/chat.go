package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"StyleSense/internal/models"
	"StyleSense/internal/stylist"
)

type ChatRequest struct {
	Messages []models.ChatMessage `json:"messages" binding:"required,min=1,dive"`
	Profile  *models.StyleProfile `json:"profile,omitempty"`
}

type ChatResponse struct {
	Reply       models.ChatMessage `json:"reply"`
	ContentHTML string             `json:"content_html"`
	Degraded    bool               `json:"degraded"`
}

// Chat godoc
// @Summary      스타일리스트 채팅
// @Description  클라이언트가 보관한 대화 전체를 받아 다음 답변을 생성합니다. 마지막 메시지는 user 역할이어야 합니다.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.ChatRequest true "대화 기록"
// @Success      200 {object} handler.ChatResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	reply, err := h.Stylist.Chat(c.Request.Context(), sessionProfile(user.Profile, req.Profile), req.Messages)
	if err != nil {
		if errors.Is(err, stylist.ErrEmptyChat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The last message must come from the user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.chatResponse(reply))
}

func (h *Handler) chatResponse(reply stylist.Reply) ChatResponse {
	return ChatResponse{
		Reply:       models.ChatMessage{Role: models.RoleAssistant, Content: reply.Content},
		ContentHTML: h.Sanitizer.HTML(reply.Content),
		Degraded:    reply.Degraded,
	}
}
