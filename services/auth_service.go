package services

import (
	"errors"
	"strings"

	"tech-booking-server/apperrors"
	"tech-booking-server/models"
	"tech-booking-server/repository"
	"tech-booking-server/utils"
)

// RegisterInput carries the registration form. Technician fields are ignored
// for customers.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	Role            models.UserRole
	Phone           string
	Address         string
	ServiceType     string
	HourlyRate      *float64
	ExperienceYears *int
	Description     string
	Skills          string
}

// AuthService handles registration and credential checks
type AuthService struct {
	store      *repository.Store
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(store *repository.Store, bcryptCost int) *AuthService {
	return &AuthService{store: store, bcryptCost: bcryptCost}
}

// Register creates the user and, for technicians, the profile in one
// transaction. A duplicate email yields a conflict and writes nothing.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    in.Email,
		Role:     in.Role,
		Phone:    in.Phone,
		Address:  in.Address,
	}
	if !user.IsValidRole() {
		return nil, apperrors.NewValidationError("Role must be customer or technician")
	}

	exists, err := s.store.EmailExists(in.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to check email", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Email already exists")
	}

	exists, err = s.store.UsernameExists(user.Username)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to check username", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Username already exists")
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to hash password", err)
	}
	user.PasswordHash = hash

	err = s.store.Transaction(func(tx *repository.Store) error {
		if err := tx.CreateUser(user); err != nil {
			return err
		}
		if !user.IsTechnician() {
			return nil
		}
		return tx.CreateTechnicianProfile(newTechnicianProfile(user.ID, in))
	})
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create user", err)
	}
	return user, nil
}

func newTechnicianProfile(userID uint, in RegisterInput) *models.TechnicianProfile {
	profile := &models.TechnicianProfile{
		UserID:          userID,
		ServiceType:     strings.TrimSpace(in.ServiceType),
		HourlyRate:      models.DefaultHourlyRate,
		ExperienceYears: in.ExperienceYears,
		Description:     in.Description,
		Skills:          in.Skills,
		IsAvailable:     true,
	}
	if profile.ServiceType == "" {
		profile.ServiceType = models.DefaultServiceType
	}
	if in.HourlyRate != nil {
		profile.HourlyRate = *in.HourlyRate
	}
	return profile
}

// Authenticate returns the user for a matching email and password. Any
// mismatch is reported as the same unauthorized error.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorizedError("Invalid credentials")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load user", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}
