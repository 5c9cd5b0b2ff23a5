package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
	"github.com/Shivansh1606/advocate-chat-app/internal/storage"
)

type BookingHandlers struct {
	Clients   *storage.ClientRepository
	Bookings  *storage.BookingRepository
	Advocates *Directory
}

// ListAdvocates handles GET /api/advocates.
func (h *BookingHandlers) ListAdvocates(c *gin.Context) {
	c.JSON(http.StatusOK, h.Advocates.All())
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	City  string `json:"city"`
	Email string `json:"email"`
}

// RegisterClient handles POST /api/register. Repeat registrations with the
// same name and phone return the existing record.
func (h *BookingHandlers) RegisterClient(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	client, err := h.Clients.Register(c.Request.Context(), req.Name, req.Phone, req.City, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered", "client": client})
}

type bookingRequest struct {
	ClientName          string `json:"client_name" binding:"required"`
	ClientEmail         string `json:"client_email" binding:"required,email"`
	ClientPhone         string `json:"client_phone" binding:"required"`
	ClientCity          string `json:"client_city"`
	AdvocateName        string `json:"advocate_name" binding:"required"`
	MeetingDate         string `json:"meeting_date" binding:"required"`
	MeetingTime         string `json:"meeting_time" binding:"required"`
	MeetingType         string `json:"meeting_type" binding:"required"`
	MeetingDuration     string `json:"meeting_duration"`
	CaseType            string `json:"case_type"`
	CaseDescription     string `json:"case_description"`
	UrgencyLevel        string `json:"urgency_level"`
	SpecialRequirements string `json:"special_requirements"`
}

// CreateBooking handles POST /api/meetings. New bookings start pending and
// wait for the admin workflow.
func (h *BookingHandlers) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.Bookings.Create(c.Request.Context(), domain.Booking{
		ClientName:          req.ClientName,
		ClientEmail:         req.ClientEmail,
		ClientPhone:         req.ClientPhone,
		ClientCity:          req.ClientCity,
		AdvocateName:        req.AdvocateName,
		MeetingDate:         req.MeetingDate,
		MeetingTime:         req.MeetingTime,
		MeetingType:         req.MeetingType,
		MeetingDuration:     req.MeetingDuration,
		CaseType:            req.CaseType,
		CaseDescription:     req.CaseDescription,
		UrgencyLevel:        req.UrgencyLevel,
		SpecialRequirements: req.SpecialRequirements,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "booked", "booking": booking})
}
