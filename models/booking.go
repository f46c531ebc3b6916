package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsValid checks the status against the known lifecycle values.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	CustomerID     uint          `json:"customer_id" gorm:"not null;index"`
	TechnicianID   uint          `json:"technician_id" gorm:"not null;index"`
	ServiceType    string        `json:"service_type" gorm:"size:100;not null"`
	Description    string        `json:"description" gorm:"type:text"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	ScheduledDate  *time.Time    `json:"scheduled_date"`
	Address        string        `json:"address" gorm:"size:200"`
	Latitude       *float64      `json:"latitude"`
	Longitude      *float64      `json:"longitude"`
	EstimatedHours float64       `json:"estimated_hours"`
	TotalCost      float64       `json:"total_cost"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	CompletedAt    *time.Time    `json:"completed_at"`

	// Ratings
	Rating *float64 `json:"rating"`
	Review string   `json:"review" gorm:"type:text"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// HasParty reports whether userID is the booking's customer or technician.
func (b *Booking) HasParty(userID uint) bool {
	return b.CustomerID == userID || b.TechnicianID == userID
}
