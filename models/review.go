package models

import (
	"time"
)

// Review is a log entry written next to a booking's rating. The technician
// aggregate is computed from Booking.Rating, not from these rows.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	BookingID    uint      `json:"booking_id" gorm:"not null;index"`
	ReviewerID   uint      `json:"reviewer_id" gorm:"not null"`
	TechnicianID uint      `json:"technician_id" gorm:"not null;index"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
