package appointments

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus tracks how far an appointment request has progressed.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusConfirmed RequestStatus = "confirmed"
	StatusCancelled RequestStatus = "cancelled"
)

// ValidStatus reports whether s is a known request status.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Request is a booking request submitted through the public site.
type Request struct {
	ID            uuid.UUID     `json:"id"`
	OwnerName     string        `json:"owner_name"`
	PetName       string        `json:"pet_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Service       string        `json:"service"`
	PreferredDate string        `json:"preferred_date"`
	Notes         string        `json:"notes,omitempty"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
