package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
	"github.com/Shivansh1606/advocate-chat-app/internal/storage"
)

const adminSessionKey = "admin"

// AdminHandlers gate the booking workflow behind a shared-key cookie
// session. An empty key disables the admin surface entirely.
type AdminHandlers struct {
	Key      string
	Clients  *storage.ClientRepository
	Bookings *storage.BookingRepository
	Messages *storage.MessageRepository
}

type loginRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *AdminHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	if h.Key == "" || req.Key != h.Key {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid key"})
		return
	}

	session := sessions.Default(c)
	session.Set(adminSessionKey, true)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandlers) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(adminSessionKey)
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Require is the guard middleware for the /api/admin group.
func (h *AdminHandlers) Require(c *gin.Context) {
	session := sessions.Default(c)
	if ok, _ := session.Get(adminSessionKey).(bool); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
		return
	}
	c.Next()
}

func (h *AdminHandlers) ListMeetings(c *gin.Context) {
	bookings, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": bookings, "count": len(bookings)})
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed declined"`
}

func (h *AdminHandlers) UpdateMeetingStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, confirmed or declined"})
		return
	}

	booking, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "booking": booking})
}

func (h *AdminHandlers) ListClients(c *gin.Context) {
	clients, err := h.Clients.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "count": len(clients)})
}

// Stats handles GET /api/admin/stats: aggregate counters for the admin
// dashboard.
func (h *AdminHandlers) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	clients, err := h.Clients.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	messageCount, err := h.Messages.CountMessages(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	today := time.Now().UTC().Format("2006-01-02")
	byStatus := lo.CountValuesBy(bookings, func(b domain.Booking) string { return b.Status })

	c.JSON(http.StatusOK, gin.H{
		"total_clients":      len(clients),
		"total_meetings":     len(bookings),
		"pending_meetings":   byStatus[domain.BookingPending],
		"confirmed_meetings": byStatus[domain.BookingConfirmed],
		"total_messages":     messageCount,
		"today_meetings": lo.CountBy(bookings, func(b domain.Booking) bool {
			return b.MeetingDate == today
		}),
		"today_clients": lo.CountBy(clients, func(cl domain.Client) bool {
			return cl.RegisteredAt.Format("2006-01-02") == today
		}),
	})
}
