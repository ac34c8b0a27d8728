// internal/websocket/chat.go
package websocket

import (
	"net/http"
	"time"

	"journal-service/internal/middleware"
	aiService "journal-service/internal/service/ai"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 64 * 1024
)

// ChatHandler runs AI chat over a websocket for clients that cannot consume
// server-sent events. Authentication uses the same bearer token, passed as
// the `token` query param.
type ChatHandler struct {
	aiService *aiService.AIService
	validator middleware.TokenValidator
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

func NewChatHandler(svc *aiService.AIService, validator middleware.TokenValidator, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		aiService: svc,
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

type inboundMessage struct {
	Message string  `json:"message"`
	EntryID *string `json:"entry_id"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (h *ChatHandler) Handle(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID, err := h.validator.ValidateAccessToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.String("user_id", userID), zap.Error(err))
			}
			return
		}
		if in.Message == "" {
			h.write(conn, outboundMessage{Type: "error", Code: "VALIDATION_ERROR", Content: "message is required"})
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		_, err := h.aiService.Chat(c.Request.Context(), userID, in.Message, in.EntryID, func(delta string) error {
			return h.write(conn, outboundMessage{Type: "chunk", Content: delta})
		})
		if err != nil {
			h.write(conn, outboundMessage{Type: "error", Code: "AI_SERVICE_ERROR", Content: "AI service temporarily unavailable"})
			continue
		}
		if err := h.write(conn, outboundMessage{Type: "done"}); err != nil {
			return
		}
	}
}

func (h *ChatHandler) write(conn *websocket.Conn, msg outboundMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
