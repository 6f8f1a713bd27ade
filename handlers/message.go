package handlers

import (
	"net/http"
	"strconv"

	"github.com/Pratik-911/skillswap/models"
	messageService "github.com/Pratik-911/skillswap/services/message"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler exposes the direct-messaging endpoints.
type MessageHandler struct {
	Service messageService.MessageService
}

// NewMessageHandler creates a MessageHandler backed by the given service.
func NewMessageHandler(svc messageService.MessageService) *MessageHandler {
	return &MessageHandler{Service: svc}
}

// ListConversationsHandler handles GET /api/messages/conversations.
func (h *MessageHandler) ListConversationsHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	convs, err := h.Service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// GetConversationHandler handles GET /api/messages/:userId.
func (h *MessageHandler) GetConversationHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	msgs, err := h.Service.GetConversation(c.Request.Context(), userID, c.Param("userId"), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendHandler handles POST /api/messages/:userId.
func (h *MessageHandler) SendHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in models.MessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	msg, err := h.Service.Send(c.Request.Context(), userID, c.Param("userId"), in.Content)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
