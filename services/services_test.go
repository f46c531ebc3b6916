package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tech-booking-server/config"
	"tech-booking-server/database"
	"tech-booking-server/models"
	"tech-booking-server/repository"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return repository.New(db)
}

func floatPtr(v float64) *float64 { return &v }

func registerCustomer(t *testing.T, store *repository.Store, name string, lat, lng *float64) *models.User {
	t.Helper()
	user, err := NewAuthService(store, bcrypt.MinCost).Register(RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "password",
		Role:     models.RoleCustomer,
		Address:  "1 Main St",
	})
	require.NoError(t, err)
	if lat != nil || lng != nil {
		require.NoError(t, NewAccountService(store).UpdateLocation(user, lat, lng))
	}
	return user
}

func registerTechnician(t *testing.T, store *repository.Store, name, serviceType string, rate float64, lat, lng *float64) *models.User {
	t.Helper()
	user, err := NewAuthService(store, bcrypt.MinCost).Register(RegisterInput{
		Username:    name,
		Email:       name + "@example.com",
		Password:    "password",
		Role:        models.RoleTechnician,
		ServiceType: serviceType,
		HourlyRate:  &rate,
		Skills:      "pipes, drains",
	})
	require.NoError(t, err)
	if lat != nil || lng != nil {
		require.NoError(t, NewAccountService(store).UpdateLocation(user, lat, lng))
	}
	return user
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
