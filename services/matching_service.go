package services

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"tech-booking-server/apperrors"
	"tech-booking-server/repository"
	"tech-booking-server/utils"
)

// SearchCriteria is a technician search from a customer coordinate.
// A nil MaxDistance means utils.DefaultSearchRadius.
type SearchCriteria struct {
	Latitude    float64
	Longitude   float64
	ServiceType string
	MaxDistance *float64
}

// TechnicianMatch is one entry of a search result.
type TechnicianMatch struct {
	ID              uint     `json:"id"`
	UserID          uint     `json:"user_id"`
	Name            string   `json:"name"`
	ServiceType     string   `json:"service_type"`
	ExperienceYears *int     `json:"experience_years"`
	HourlyRate      float64  `json:"hourly_rate"`
	Rating          float64  `json:"rating"`
	TotalReviews    int      `json:"total_reviews"`
	Description     string   `json:"description"`
	Distance        float64  `json:"distance"`
	Skills          []string `json:"skills"`
}

// MatchingService finds available technicians near a customer
type MatchingService struct {
	store *repository.Store
}

// NewMatchingService creates a new matching service
func NewMatchingService(store *repository.Store) *MatchingService {
	return &MatchingService{store: store}
}

// FindTechnicians returns available technicians whose service type contains
// the filter (case-insensitive) and who are within MaxDistance kilometers,
// nearest first. A candidate whose distance cannot be computed is skipped, so
// an out-of-range customer coordinate yields no matches.
func (s *MatchingService) FindTechnicians(criteria SearchCriteria) ([]TechnicianMatch, error) {
	maxDistance := utils.DefaultSearchRadius
	if criteria.MaxDistance != nil {
		maxDistance = *criteria.MaxDistance
	}
	filter := strings.ToLower(criteria.ServiceType)

	profiles, err := s.store.ListAvailableProfiles()
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load technicians", err)
	}

	userIDs := make([]uint, 0, len(profiles))
	for _, profile := range profiles {
		userIDs = append(userIDs, profile.UserID)
	}
	users, err := s.store.FindUsersByIDs(userIDs)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load technicians", err)
	}

	matches := []TechnicianMatch{}
	for _, profile := range profiles {
		if filter != "" && !strings.Contains(strings.ToLower(profile.ServiceType), filter) {
			continue
		}

		user, ok := users[profile.UserID]
		if !ok || !user.HasLocation() {
			continue
		}

		distance, err := utils.GeodesicDistance(criteria.Latitude, criteria.Longitude, *user.Latitude, *user.Longitude)
		if err != nil {
			log.Debug().Err(err).Uint("technician_id", profile.UserID).Msg("Skipping technician, distance unavailable")
			continue
		}
		if distance > maxDistance {
			continue
		}

		matches = append(matches, TechnicianMatch{
			ID:              profile.ID,
			UserID:          profile.UserID,
			Name:            user.Username,
			ServiceType:     profile.ServiceType,
			ExperienceYears: profile.ExperienceYears,
			HourlyRate:      profile.HourlyRate,
			Rating:          profile.Rating,
			TotalReviews:    profile.TotalReviews,
			Description:     profile.Description,
			Distance:        utils.RoundTo(distance, 2),
			Skills:          profile.SkillList(),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches, nil
}
