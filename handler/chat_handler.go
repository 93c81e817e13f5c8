package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/paperdesk/paperdesk-be/types"
)

// ChatHandler relays a student's question to the configured AI provider.
// A nil aiService means no provider credential was configured at startup.
type ChatHandler struct {
	aiService service.AIService
}

func NewChatHandler(aiService service.AIService) *ChatHandler {
	return &ChatHandler{
		aiService: aiService,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	if h.aiService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service not configured"})
		return
	}

	answer, err := h.aiService.Chat(c.Request.Context(), &req)
	if err != nil {
		// Upstream detail stays server-side; the client gets a terse error.
		log.Printf("chat completion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response"})
		return
	}

	c.JSON(http.StatusOK, types.ChatResponse{
		Message: answer,
	})
}
