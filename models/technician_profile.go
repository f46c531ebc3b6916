package models

import "strings"

const (
	DefaultServiceType = "General"
	DefaultHourlyRate  = 25.0
)

// TechnicianProfile extends a technician User with the data used for matching
// and pricing. Rating and TotalReviews are derived from completed bookings.
type TechnicianProfile struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	UserID          uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	ServiceType     string  `json:"service_type" gorm:"size:100;not null"`
	ExperienceYears *int    `json:"experience_years"`
	HourlyRate      float64 `json:"hourly_rate" gorm:"not null"`
	Description     string  `json:"description" gorm:"type:text"`
	Rating          float64 `json:"rating" gorm:"default:0"`
	TotalReviews    int     `json:"total_reviews" gorm:"default:0"`
	IsAvailable     bool    `json:"is_available" gorm:"default:true"`
	Skills          string  `json:"skills" gorm:"type:text"` // Comma separated
}

// TableName specifies the table name for the TechnicianProfile model
func (TechnicianProfile) TableName() string {
	return "technician_profiles"
}

// SkillList splits the comma separated skills column.
func (p *TechnicianProfile) SkillList() []string {
	skills := []string{}
	if p.Skills == "" {
		return skills
	}
	for _, skill := range strings.Split(p.Skills, ",") {
		skills = append(skills, strings.TrimSpace(skill))
	}
	return skills
}
