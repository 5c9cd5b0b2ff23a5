package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh1606/advocate-chat-app/internal/app"
	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

// WebRTCHandlers expose the signaling room operations. The server is a dumb
// relay: envelopes pass through untouched and peers poll for what they have
// not processed yet, diffing by signal id.
type WebRTCHandlers struct {
	Dispatch *app.Dispatcher
}

type joinRequest struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

func (h *WebRTCHandlers) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.Dispatch.JoinSignaling(domain.RoomID(req.Room), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": res.UserID,
		"users":   res.Users,
		"count":   res.Count,
	})
}

type leaveRequest struct {
	Room   string `json:"room"`
	UserID string `json:"user_id"`
}

func (h *WebRTCHandlers) Leave(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.Dispatch.LeaveSignaling(domain.RoomID(req.Room), req.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "left"})
}

type signalRequest struct {
	Room string          `json:"room"`
	From string          `json:"from"`
	To   string          `json:"to"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (h *WebRTCHandlers) Signal(c *gin.Context) {
	var req signalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sig, err := h.Dispatch.SendSignal(domain.RoomID(req.Room), req.From, req.To, req.Type, req.Data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signal_id": sig.ID})
}

func (h *WebRTCHandlers) Poll(c *gin.Context) {
	res, err := h.Dispatch.PollSignals(domain.RoomID(c.Query("room")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"signals": res.Signals,
		"users":   res.Users,
		"count":   res.Count,
	})
}
