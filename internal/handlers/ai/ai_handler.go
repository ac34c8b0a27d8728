// internal/handlers/ai/ai_handler.go
package ai

import (
	"encoding/json"
	"net/http"
	"strconv"

	"journal-service/internal/domain/ai"
	"journal-service/internal/middleware"
	"journal-service/internal/pkg/response"
	aiService "journal-service/internal/service/ai"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AIHandler struct {
	aiService *aiService.AIService
	logger    *zap.Logger
}

func NewAIHandler(svc *aiService.AIService, logger *zap.Logger) *AIHandler {
	return &AIHandler{aiService: svc, logger: logger}
}

func (h *AIHandler) GeneratePrompt(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req ai.PromptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindingErr(c, err)
			return
		}
	}

	prompt, err := h.aiService.GeneratePrompt(c.Request.Context(), userID, req.Context)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"prompt": prompt})
}

func (h *AIHandler) ImproveText(c *gin.Context) {
	var req ai.ImproveTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	improved, err := h.aiService.ImproveText(c.Request.Context(), req.Text, req.Instruction)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"improved_text": improved})
}

// Chat streams the companion reply as server-sent events. Each delta is a
// `data:` frame carrying {"content": "..."}; the final frame is
// {"done": true}.
func (h *AIHandler) Chat(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req ai.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, _ := c.Writer.(http.Flusher)
	streamed := false

	_, err := h.aiService.Chat(c.Request.Context(), userID, req.Message, req.EntryID, func(delta string) error {
		streamed = true
		frame, _ := json.Marshal(gin.H{"content": delta})
		if _, err := c.Writer.Write(append(append([]byte("data: "), frame...), '\n', '\n')); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		if !streamed {
			// Headers not flushed yet: the taxonomy envelope still works.
			c.Writer.Header().Del("Content-Type")
			response.Err(c, err)
			return
		}
		h.logger.Warn("chat stream aborted", zap.String("user_id", userID), zap.Error(err))
		return
	}

	if _, err := c.Writer.Write([]byte("data: {\"done\": true}\n\n")); err == nil && flusher != nil {
		flusher.Flush()
	}
}

func (h *AIHandler) ConversationHistory(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	convs, err := h.aiService.ConversationHistory(c.Request.Context(), userID, limit)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"conversations": convs})
}

func (h *AIHandler) ClearHistory(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.aiService.ClearHistory(c.Request.Context(), userID); err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Conversation history cleared"})
}
