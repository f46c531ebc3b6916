package services

import (
	"errors"

	"github.com/rs/zerolog/log"

	"tech-booking-server/apperrors"
	"tech-booking-server/models"
	"tech-booking-server/repository"
	"tech-booking-server/utils"
)

const dashboardBookingLimit = 5

// ProfileSummary is the technician excerpt returned with the user info.
// Every field is null for customers.
type ProfileSummary struct {
	ServiceType *string  `json:"service_type"`
	HourlyRate  *float64 `json:"hourly_rate"`
	Rating      *float64 `json:"rating"`
}

// UserInfo is the current principal as exposed by the API.
type UserInfo struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	Profile  ProfileSummary  `json:"profile"`
}

// TechnicianDashboard aggregates what the technician home page shows.
type TechnicianDashboard struct {
	Profile        *models.TechnicianProfile
	Bookings       []models.Booking
	TotalCompleted int64
	TotalEarnings  float64
}

// AccountService covers the per-user operations outside the booking lifecycle
type AccountService struct {
	store *repository.Store
}

// NewAccountService creates a new account service
func NewAccountService(store *repository.Store) *AccountService {
	return &AccountService{store: store}
}

// UpdateLocation stores the user's coordinate. Nil values clear it.
func (s *AccountService) UpdateLocation(user *models.User, latitude, longitude *float64) error {
	lat, lng := 0.0, 0.0
	if latitude != nil {
		lat = *latitude
	}
	if longitude != nil {
		lng = *longitude
	}
	if !utils.IsLocationValid(lat, lng) {
		return apperrors.NewValidationError("Invalid coordinates")
	}

	if err := s.store.UpdateUserLocation(user.ID, latitude, longitude); err != nil {
		return apperrors.NewInternalError("Failed to update location", err)
	}
	user.Latitude = latitude
	user.Longitude = longitude
	return nil
}

// SetAvailability toggles whether the technician shows up in searches. A
// technician without a profile is left as is.
func (s *AccountService) SetAvailability(user *models.User, available bool) error {
	if !user.IsTechnician() {
		return apperrors.NewForbiddenError("Unauthorized")
	}

	err := s.store.SetAvailability(user.ID, available)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Uint("user_id", user.ID).Msg("Technician has no profile, availability not stored")
		return nil
	}
	if err != nil {
		return apperrors.NewInternalError("Failed to update availability", err)
	}
	return nil
}

func (s *AccountService) UserInfo(user *models.User) (*UserInfo, error) {
	info := &UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	if !user.IsTechnician() {
		return info, nil
	}

	profile, err := s.store.FindProfileByUserID(user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return info, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load profile", err)
	}
	info.Profile = ProfileSummary{
		ServiceType: &profile.ServiceType,
		HourlyRate:  &profile.HourlyRate,
		Rating:      &profile.Rating,
	}
	return info, nil
}

// ServiceNames returns the distinct catalog names.
func (s *AccountService) ServiceNames() ([]string, error) {
	names, err := s.store.ListServiceNames()
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load services", err)
	}
	return names, nil
}

// Bookings returns the user's bookings, newest first. limit <= 0 returns all.
func (s *AccountService) Bookings(user *models.User, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	var err error
	if user.IsTechnician() {
		bookings, err = s.store.ListBookingsForTechnician(user.ID, limit)
	} else {
		bookings, err = s.store.ListBookingsForCustomer(user.ID, limit)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load bookings", err)
	}
	return bookings, nil
}

// RecentBookings is Bookings limited to the dashboard size.
func (s *AccountService) RecentBookings(user *models.User) ([]models.Booking, error) {
	return s.Bookings(user, dashboardBookingLimit)
}

func (s *AccountService) TechnicianDashboard(user *models.User) (*TechnicianDashboard, error) {
	bookings, err := s.RecentBookings(user)
	if err != nil {
		return nil, err
	}

	dashboard := &TechnicianDashboard{Bookings: bookings}
	profile, err := s.store.FindProfileByUserID(user.ID)
	switch {
	case err == nil:
		dashboard.Profile = profile
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NewInternalError("Failed to load profile", err)
	}

	stats, err := s.store.TechnicianStats(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load stats", err)
	}
	dashboard.TotalCompleted = stats.TotalCompleted
	dashboard.TotalEarnings = stats.TotalEarnings
	return dashboard, nil
}
