package repository

import (
	"fmt"
	"sort"

	"tech-booking-server/models"
)

// ListServiceNames returns the distinct catalog names, sorted.
func (s *Store) ListServiceNames() ([]string, error) {
	var services []models.Service
	if err := s.db.Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	seen := make(map[string]struct{}, len(services))
	names := make([]string, 0, len(services))
	for _, service := range services {
		if _, ok := seen[service.Name]; ok {
			continue
		}
		seen[service.Name] = struct{}{}
		names = append(names, service.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) CreateReview(review *models.Review) error {
	if err := s.db.Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *Store) ListReviewsForTechnician(technicianID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("technician_id = ?", technicianID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
