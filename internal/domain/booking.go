package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meeting booking statuses, driven by the admin workflow.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingDeclined  = "declined"
)

// Client is a registered person asking for a consultation.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Email        string    `json:"email,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func NewClient(name, phone, city, email string, now time.Time) Client {
	return Client{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		City:         city,
		Email:        email,
		RegisteredAt: now,
	}
}

// Booking is a meeting request between a client and an advocate.
type Booking struct {
	ID                  string    `json:"id"`
	ClientName          string    `json:"client_name"`
	ClientEmail         string    `json:"client_email"`
	ClientPhone         string    `json:"client_phone"`
	ClientCity          string    `json:"client_city,omitempty"`
	AdvocateName        string    `json:"advocate_name"`
	MeetingDate         string    `json:"meeting_date"`
	MeetingTime         string    `json:"meeting_time"`
	MeetingType         string    `json:"meeting_type"`
	MeetingDuration     string    `json:"meeting_duration"`
	CaseType            string    `json:"case_type,omitempty"`
	CaseDescription     string    `json:"case_description,omitempty"`
	UrgencyLevel        string    `json:"urgency_level"`
	SpecialRequirements string    `json:"special_requirements,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Advocate is a static directory entry; the listing is data, not state.
type Advocate struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Experience     string   `json:"experience,omitempty"`
	City           string   `json:"city,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
}
