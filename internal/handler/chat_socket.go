/**
* Name: 			chat_socket.go
* Description: 		WebSocket 채팅 세션
* Workflow: 		토큰 검증 → 연결 업그레이드 → 메시지 수신, 대화 누적, 답변 전송
 */
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"StyleSense/internal/models"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	// oldest turns are dropped past this many messages
	maxTranscript  = 100
	maxChatMessage = 8 << 10
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	writeWait      = 10 * time.Second
)

// inbound frames are plain text or {"content": "..."}
type socketMessage struct {
	Content string `json:"content"`
}

// ChatSocket godoc
// @Summary      채팅 WebSocket 연결
// @Description  실시간 스타일 채팅을 위한 WebSocket 연결을 시작합니다. 서버가 연결별로 대화를 보관합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  인증은 HTTP Header 또는 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         Chat
// @Param        token    query     string  true  "로그인 시 발급받은 JWT 토큰"
// @Success      101      {string}  string  "101 Switching Protocols"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/chat [get]
func (h *Handler) ChatSocket(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("failed to upgrade to websocket", zap.String("username", user.Username), zap.Error(err))
		return
	}
	h.manageChatSession(conn, user)
}

func (h *Handler) manageChatSession(conn *websocket.Conn, user models.User) {
	defer conn.Close()
	sessionID := uuid.NewString()
	log := h.Logger.With(zap.String("session_id", sessionID), zap.String("username", user.Username))
	log.Info("chat session started")

	conn.SetReadLimit(maxChatMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	var transcript []models.ChatMessage
ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("error reading message", zap.Error(err))
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			log.Debug("unsupported message type", zap.Int("type", messageType))
			continue
		}

		text := parseSocketMessage(message)
		if text == "" {
			continue
		}
		transcript = append(transcript, models.ChatMessage{Role: models.RoleUser, Content: text})

		reply, err := h.Stylist.Chat(context.Background(), user.Profile, transcript)
		if err != nil {
			log.Warn("chat turn rejected", zap.Error(err))
			continue
		}
		// failed turns are shown to the client but never replayed to the model
		if !reply.Degraded {
			transcript = append(transcript, models.ChatMessage{Role: models.RoleAssistant, Content: reply.Content})
		}
		if len(transcript) > maxTranscript {
			transcript = transcript[len(transcript)-maxTranscript:]
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(h.chatResponse(reply)); err != nil {
			log.Warn("error sending message", zap.Error(err))
			break ReadLoop
		}
	}
	log.Info("chat session ended", zap.Int("messages", len(transcript)))
}

func parseSocketMessage(raw []byte) string {
	var m socketMessage
	if json.Unmarshal(raw, &m) == nil && m.Content != "" {
		return strings.TrimSpace(m.Content)
	}
	return strings.TrimSpace(string(raw))
}
