package repository

import (
	"fmt"

	"tech-booking-server/models"
)

func (s *Store) CreateTechnicianProfile(profile *models.TechnicianProfile) error {
	if err := s.db.Create(profile).Error; err != nil {
		return fmt.Errorf("create technician profile: %w", err)
	}
	return nil
}

func (s *Store) FindProfileByUserID(userID uint) (*models.TechnicianProfile, error) {
	var profile models.TechnicianProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// ListAvailableProfiles returns every profile with is_available set, in id order.
func (s *Store) ListAvailableProfiles() ([]models.TechnicianProfile, error) {
	var profiles []models.TechnicianProfile
	if err := s.db.Where("is_available = ?", true).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list available profiles: %w", err)
	}
	return profiles, nil
}

// SetAvailability returns ErrNotFound when the user has no profile.
func (s *Store) SetAvailability(userID uint, available bool) error {
	result := s.db.Model(&models.TechnicianProfile{}).Where("user_id = ?", userID).
		Update("is_available", available)
	if result.Error != nil {
		return fmt.Errorf("update availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRatingAggregate overwrites the derived rating columns of a profile.
func (s *Store) UpdateRatingAggregate(userID uint, rating float64, totalReviews int) error {
	err := s.db.Model(&models.TechnicianProfile{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": totalReviews,
		}).Error
	if err != nil {
		return fmt.Errorf("update rating aggregate: %w", err)
	}
	return nil
}
