package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tech-booking-server/apperrors"
	"tech-booking-server/models"
)

func TestRegisterCustomer(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store, bcrypt.MinCost)

	user, err := auth.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password",
		Role:     models.RoleCustomer,
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password", user.PasswordHash)

	_, err = store.FindProfileByUserID(user.ID)
	assert.Error(t, err, "customers have no technician profile")
}

func TestRegisterTechnicianCreatesProfileWithDefaults(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store, bcrypt.MinCost)

	user, err := auth.Register(RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password",
		Role:     models.RoleTechnician,
	})
	require.NoError(t, err)

	profile, err := store.FindProfileByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultServiceType, profile.ServiceType)
	assert.Equal(t, models.DefaultHourlyRate, profile.HourlyRate)
	assert.True(t, profile.IsAvailable)
	assert.Equal(t, 0.0, profile.Rating)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store, bcrypt.MinCost)

	_, err := auth.Register(RegisterInput{Username: "first", Email: "dup@example.com", Password: "pw", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = auth.Register(RegisterInput{Username: "second", Email: "dup@example.com", Password: "pw", Role: models.RoleTechnician})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Equal(t, "Email already exists", apperrors.Message(err))

	exists, err := store.UsernameExists("second")
	require.NoError(t, err)
	assert.False(t, exists, "no row is created for the duplicate")
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store, bcrypt.MinCost)

	_, err := auth.Register(RegisterInput{Username: "lower", Email: "case@example.com", Password: "pw", Role: models.RoleCustomer})
	require.NoError(t, err)
	_, err = auth.Register(RegisterInput{Username: "upper", Email: "CASE@example.com", Password: "pw", Role: models.RoleCustomer})
	assert.NoError(t, err)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	store := setupStore(t)
	_, err := NewAuthService(store, bcrypt.MinCost).Register(RegisterInput{Username: "x", Email: "x@example.com", Password: "pw", Role: "admin"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAuthenticate(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store, bcrypt.MinCost)
	registered := registerCustomer(t, store, "carol", nil, nil)

	user, err := auth.Authenticate("carol@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	for _, tc := range []struct{ email, password string }{
		{"carol@example.com", "wrong"},
		{"nobody@example.com", "password"},
	} {
		_, err := auth.Authenticate(tc.email, tc.password)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		assert.Equal(t, "Invalid credentials", apperrors.Message(err))
	}
}
