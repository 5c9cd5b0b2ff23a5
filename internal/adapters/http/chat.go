package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh1606/advocate-chat-app/internal/app"
	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

type ChatHandlers struct {
	Dispatch *app.Dispatcher
}

type sendMessageRequest struct {
	Room    string `json:"room"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Send handles POST /api/chat/send.
func (h *ChatHandlers) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.Dispatch.SendMessage(domain.RoomID(req.Room), req.Sender, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"message_id": msg.ID,
		"timestamp":  msg.At,
	})
}

// Poll handles GET /api/chat/messages?room=&limit=.
func (h *ChatHandlers) Poll(c *gin.Context) {
	room := domain.RoomID(c.Query("room"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.Dispatch.PollMessages(c.Request.Context(), room, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"count":    len(msgs),
	})
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrResourceExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
