package models

// Service is a catalog entry. Bookings reference service types by name only.
type Service struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"size:100;not null"`
	Description  string   `json:"description" gorm:"type:text"`
	BasePrice    *float64 `json:"base_price"`
	TechnicianID *uint    `json:"technician_id"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// DefaultServices is the catalog seeded into an empty services table.
func DefaultServices() []Service {
	return []Service{
		{Name: "Plumbing", Description: "Fix leaks, install fixtures, clear drains"},
		{Name: "Electrical", Description: "Wiring, lighting, electrical repairs"},
		{Name: "HVAC", Description: "Heating, ventilation, air conditioning"},
		{Name: "Carpentry", Description: "Furniture, cabinets, structural work"},
		{Name: "Painting", Description: "Interior and exterior painting"},
		{Name: "Cleaning", Description: "Residential and commercial cleaning"},
		{Name: "Appliance Repair", Description: "Fix household appliances"},
		{Name: "General Handyman", Description: "Various home repairs"},
	}
}
