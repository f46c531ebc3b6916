package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "technician_profiles", TechnicianProfile{}.TableName())
	assert.Equal(t, "services", Service{}.TableName())
	assert.Equal(t, "bookings", Booking{}.TableName())
	assert.Equal(t, "reviews", Review{}.TableName())
}

func TestUserRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       UserRole
		valid      bool
		technician bool
	}{
		{"customer role", RoleCustomer, true, false},
		{"technician role", RoleTechnician, true, true},
		{"unknown role", UserRole("admin"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{Role: tt.role}
			assert.Equal(t, tt.valid, user.IsValidRole())
			assert.Equal(t, tt.technician, user.IsTechnician())
		})
	}
}

func TestUserBeforeCreateDefaultsToCustomer(t *testing.T) {
	user := User{Email: "new@example.com"}
	assert.NoError(t, user.BeforeCreate(nil))
	assert.Equal(t, RoleCustomer, user.Role)
}

func TestUserHasLocation(t *testing.T) {
	lat, lng := 40.7, -74.0
	assert.False(t, (&User{}).HasLocation())
	assert.False(t, (&User{Latitude: &lat}).HasLocation())
	assert.True(t, (&User{Latitude: &lat, Longitude: &lng}).HasLocation())
}

func TestSkillList(t *testing.T) {
	tests := []struct {
		name   string
		skills string
		want   []string
	}{
		{"empty", "", []string{}},
		{"single", "pipes", []string{"pipes"}},
		{"trims whitespace", "pipes, drains ,boilers", []string{"pipes", "drains", "boilers"}},
		{"keeps empty entries", "pipes,,drains", []string{"pipes", "", "drains"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := TechnicianProfile{Skills: tt.skills}
			assert.Equal(t, tt.want, profile.SkillList())
		})
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, status := range []BookingStatus{"pending", "accepted", "in_progress", "completed", "cancelled"} {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, BookingStatus("done").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingHasParty(t *testing.T) {
	booking := Booking{CustomerID: 1, TechnicianID: 2}
	assert.True(t, booking.HasParty(1))
	assert.True(t, booking.HasParty(2))
	assert.False(t, booking.HasParty(3))
}

func TestDefaultServices(t *testing.T) {
	services := DefaultServices()
	assert.Len(t, services, 8)
	assert.Equal(t, "Plumbing", services[0].Name)
	assert.Equal(t, "General Handyman", services[7].Name)
}
