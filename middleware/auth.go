package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tech-booking-server/models"
	"tech-booking-server/repository"
	"tech-booking-server/services"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// AuthRequired resolves the session token from the session cookie or a Bearer
// header and loads the user through the request transaction.
func AuthRequired(sessions *services.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c, cookieName)
		if tokenString == "" {
			unauthenticated(c, "Please log in")
			return
		}

		claims, err := sessions.Parse(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected session token")
			unauthenticated(c, "Session is invalid or expired")
			return
		}

		user, err := repository.New(Tx(c)).FindUserByID(claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			unauthenticated(c, "User associated with session not found")
			return
		}
		if err != nil {
			log.Error().Err(err).Uint("user_id", claims.UserID).Msg("Failed to load session user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to load user",
			})
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid session is present and never
// rejects the request.
func OptionalAuth(sessions *services.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c, cookieName)
		if tokenString == "" {
			c.Next()
			return
		}
		claims, err := sessions.Parse(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if user, err := repository.New(Tx(c)).FindUserByID(claims.UserID); err == nil {
			c.Set(userKey, user)
			c.Set(userIDKey, user.ID)
		}
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role differs.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// WantsHTML reports whether the request is a browser page load.
func WantsHTML(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet && strings.Contains(c.GetHeader("Accept"), "text/html")
}

func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token := strings.TrimPrefix(header, "Bearer "); token != header {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func unauthenticated(c *gin.Context, message string) {
	if WantsHTML(c) {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "Authentication required",
		"message": message,
	})
}
