package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tech-booking-server/apperrors"
	"tech-booking-server/models"
	"tech-booking-server/repository"
	"tech-booking-server/utils"
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

// CreateBookingInput is a customer's booking request. An empty Address falls
// back to the customer's stored address.
type CreateBookingInput struct {
	TechnicianID   uint
	ServiceType    string
	Description    string
	Address        string
	Latitude       *float64
	Longitude      *float64
	ScheduledDate  string
	EstimatedHours float64
}

// BookingService manages the booking lifecycle and the derived technician rating
type BookingService struct {
	store *repository.Store
	now   func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(store *repository.Store) *BookingService {
	return &BookingService{store: store, now: time.Now}
}

// CreateBooking prices the job at the technician's current hourly rate and
// stores it as pending.
func (s *BookingService) CreateBooking(customer *models.User, in CreateBookingInput) (*models.Booking, error) {
	technician, err := s.store.FindUserByID(in.TechnicianID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !technician.IsTechnician()) {
		return nil, apperrors.NewNotFoundError("Technician not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load technician", err)
	}

	profile, err := s.store.FindProfileByUserID(technician.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("Technician not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load technician profile", err)
	}

	if in.EstimatedHours < 0 {
		return nil, apperrors.NewValidationError("Estimated hours must not be negative")
	}

	booking := &models.Booking{
		CustomerID:     customer.ID,
		TechnicianID:   technician.ID,
		ServiceType:    in.ServiceType,
		Description:    in.Description,
		Status:         models.BookingStatusPending,
		Address:        in.Address,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		EstimatedHours: in.EstimatedHours,
		TotalCost:      profile.HourlyRate * in.EstimatedHours,
	}
	if strings.TrimSpace(booking.Address) == "" {
		booking.Address = customer.Address
	}
	if in.ScheduledDate != "" {
		scheduled, err := utils.ParseScheduledDate(in.ScheduledDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid scheduled_date, expected ISO-8601")
		}
		booking.ScheduledDate = &scheduled
	}

	if err := s.store.CreateBooking(booking); err != nil {
		return nil, apperrors.NewInternalError("Failed to create booking", err)
	}

	log.Info().
		Uint("booking_id", booking.ID).
		Uint("customer_id", customer.ID).
		Uint("technician_id", technician.ID).
		Float64("total_cost", booking.TotalCost).
		Msg("Booking created")
	return booking, nil
}

// UpdateStatus lets either party set any known status. Completing a booking
// stamps completed_at in UTC.
func (s *BookingService) UpdateStatus(caller *models.User, bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("Invalid status")
	}

	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.HasParty(caller.ID) {
		return nil, apperrors.NewForbiddenError("Unauthorized")
	}

	var completedAt *time.Time
	if status == models.BookingStatusCompleted {
		now := s.now().UTC()
		completedAt = &now
	}
	if err := s.store.UpdateBookingStatus(booking.ID, status, completedAt); err != nil {
		return nil, apperrors.NewInternalError("Failed to update booking", err)
	}

	booking.Status = status
	if completedAt != nil {
		booking.CompletedAt = completedAt
	}
	log.Info().Uint("booking_id", booking.ID).Uint("user_id", caller.ID).Str("status", string(status)).Msg("Booking status updated")
	return booking, nil
}

// SubmitReview records the customer's rating on a completed booking and
// recomputes the technician's aggregate from every rated completed booking.
func (s *BookingService) SubmitReview(caller *models.User, bookingID uint, rating float64, review string) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != caller.ID {
		return nil, apperrors.NewForbiddenError("Unauthorized")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.NewValidationError("Can only review completed bookings")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, apperrors.NewValidationError("Rating must be between 1 and 5")
	}

	if err := s.store.SaveBookingReview(booking.ID, rating, review); err != nil {
		return nil, apperrors.NewInternalError("Failed to save review", err)
	}
	booking.Rating = &rating
	booking.Review = review

	if err := s.store.CreateReview(&models.Review{
		BookingID:    booking.ID,
		ReviewerID:   caller.ID,
		TechnicianID: booking.TechnicianID,
		Rating:       int(math.Round(rating)),
		Comment:      review,
	}); err != nil {
		return nil, apperrors.NewInternalError("Failed to save review", err)
	}

	if err := s.recomputeRating(booking.TechnicianID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) recomputeRating(technicianID uint) error {
	completed, err := s.store.ListCompletedBookingsForTechnician(technicianID)
	if err != nil {
		return apperrors.NewInternalError("Failed to load completed bookings", err)
	}

	var sum float64
	var count int
	for _, booking := range completed {
		if booking.Rating == nil {
			continue
		}
		sum += *booking.Rating
		count++
	}
	if count == 0 {
		return nil
	}

	average := utils.RoundTo(sum/float64(count), 1)
	if err := s.store.UpdateRatingAggregate(technicianID, average, count); err != nil {
		return apperrors.NewInternalError("Failed to update technician rating", err)
	}
	log.Info().Uint("technician_id", technicianID).Float64("rating", average).Int("total_reviews", count).Msg("Technician rating updated")
	return nil
}

func (s *BookingService) loadBooking(id uint) (*models.Booking, error) {
	booking, err := s.store.FindBookingByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("Booking not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load booking", err)
	}
	return booking, nil
}
