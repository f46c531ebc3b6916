package repository

import (
	"fmt"
	"time"

	"tech-booking-server/models"
)

// TechnicianStats summarises completed work for the technician dashboard.
type TechnicianStats struct {
	TotalCompleted int64
	TotalEarnings  float64
}

func (s *Store) CreateBooking(booking *models.Booking) error {
	if err := s.db.Create(booking).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *Store) FindBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (s *Store) UpdateBookingStatus(id uint, status models.BookingStatus, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	if err := s.db.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

func (s *Store) SaveBookingReview(id uint, rating float64, review string) error {
	err := s.db.Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating": rating,
			"review": review,
		}).Error
	if err != nil {
		return fmt.Errorf("save booking review: %w", err)
	}
	return nil
}

// ListCompletedBookingsForTechnician returns every completed booking of the
// technician user, rated or not.
func (s *Store) ListCompletedBookingsForTechnician(technicianID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Where("technician_id = ? AND status = ?", technicianID, models.BookingStatusCompleted).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list completed bookings: %w", err)
	}
	return bookings, nil
}

// ListBookingsForCustomer returns newest first; limit <= 0 means no limit.
func (s *Store) ListBookingsForCustomer(customerID uint, limit int) ([]models.Booking, error) {
	return s.listBookings("customer_id = ?", customerID, limit)
}

// ListBookingsForTechnician returns newest first; limit <= 0 means no limit.
func (s *Store) ListBookingsForTechnician(technicianID uint, limit int) ([]models.Booking, error) {
	return s.listBookings("technician_id = ?", technicianID, limit)
}

func (s *Store) listBookings(where string, userID uint, limit int) ([]models.Booking, error) {
	query := s.db.Where(where, userID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Store) TechnicianStats(technicianID uint) (TechnicianStats, error) {
	var stats TechnicianStats
	err := s.db.Model(&models.Booking{}).
		Select("COUNT(*) AS total_completed, COALESCE(SUM(total_cost), 0) AS total_earnings").
		Where("technician_id = ? AND status = ?", technicianID, models.BookingStatusCompleted).
		Scan(&stats).Error
	if err != nil {
		return stats, fmt.Errorf("technician stats: %w", err)
	}
	return stats, nil
}
