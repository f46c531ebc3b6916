package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tech-booking-server/apperrors"
	"tech-booking-server/models"
	"tech-booking-server/services"
)

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// RegisterRequest represents the registration request. The technician
// fields only apply when role is technician.
type RegisterRequest struct {
	Username        string   `json:"username" binding:"required,max=80"`
	Email           string   `json:"email" binding:"required,email,max=120"`
	Password        string   `json:"password" binding:"required"`
	Role            string   `json:"role" binding:"required,oneof=customer technician"`
	Phone           string   `json:"phone" binding:"max=20"`
	Address         string   `json:"address" binding:"max=200"`
	ServiceType     string   `json:"service_type" binding:"max=100"`
	HourlyRate      *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	ExperienceYears *int     `json:"experience_years" binding:"omitempty,gte=0"`
	Description     string   `json:"description"`
	Skills          string   `json:"skills"`
}

// login handles POST /login
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := services.NewAuthService(store(c), h.cfg.Security.BcryptCost).Authenticate(req.Email, req.Password)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeUnauthorized) {
			log.Info().Str("ip", c.ClientIP()).Msg("Failed login attempt")
		}
		respondAuthError(c, err)
		return
	}

	if !h.startSession(c, user, req.Remember) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": user.Role})
}

// register handles POST /register
func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := services.NewAuthService(store(c), h.cfg.Security.BcryptCost).Register(services.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Role:            models.UserRole(req.Role),
		Phone:           req.Phone,
		Address:         req.Address,
		ServiceType:     req.ServiceType,
		HourlyRate:      req.HourlyRate,
		ExperienceYears: req.ExperienceYears,
		Description:     req.Description,
		Skills:          req.Skills,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("User registered")
	if !h.startSession(c, user, false) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": user.Role})
}

// logout handles GET /logout
func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) startSession(c *gin.Context, user *models.User, remember bool) bool {
	session, err := h.sessions.Issue(user, remember)
	if err != nil {
		respondError(c, apperrors.NewInternalError("Failed to start session", err))
		return false
	}

	// A zero max age leaves a browser-session cookie.
	maxAge := 0
	if session.Persistent {
		maxAge = int(h.cfg.Session.RememberFor.Seconds())
	}
	h.setSessionCookie(c, session.Token, maxAge)
	return true
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, value, maxAge, "/", "", h.cfg.Session.SecureCookie, true)
}
