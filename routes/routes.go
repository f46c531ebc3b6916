package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tech-booking-server/config"
	"tech-booking-server/database"
	"tech-booking-server/middleware"
	"tech-booking-server/models"
	"tech-booking-server/services"
)

// Handler holds the dependencies shared by every route. Per-request services
// are built from the request transaction.
type Handler struct {
	cfg      *config.Config
	sessions *services.SessionService
}

func NewHandler(cfg *config.Config, sessions *services.SessionService) *Handler {
	return &Handler{cfg: cfg, sessions: sessions}
}

// RegisterRoutes registers all routes on router. db backs the per-request
// transactions and the health check.
func (h *Handler) RegisterRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/health", healthCheck(db))
	router.NoRoute(notFound)

	cookie := h.cfg.Session.CookieName
	authRequired := middleware.AuthRequired(h.sessions, cookie)
	customerOnly := middleware.RequireRole(models.RoleCustomer)
	technicianOnly := middleware.RequireRole(models.RoleTechnician)
	authLimit := middleware.AuthRateLimit(h.cfg.Security)

	app := router.Group("/", middleware.Transaction(db))
	{
		app.GET("/", middleware.OptionalAuth(h.sessions, cookie), index)
		app.GET("/login", loginPage)
		app.POST("/login", authLimit, h.login)
		app.GET("/register", registerPage)
		app.POST("/register", authLimit, h.register)
		app.GET("/api/services", listServices)
	}

	authed := app.Group("/", authRequired)
	{
		authed.GET("/logout", h.logout)
		authed.POST("/update-booking-status", updateBookingStatus)
		authed.POST("/update-location", updateLocation)
		authed.GET("/api/user-info", userInfo)

		authed.GET("/customer/dashboard", customerDashboard)
		authed.GET("/customer/bookings", customerBookings)
		authed.GET("/technician/dashboard", technicianDashboard)
		authed.GET("/technician/bookings", technicianBookings)
	}

	customer := authed.Group("/", customerOnly)
	{
		customer.GET("/find-technicians", findTechniciansPage)
		customer.POST("/find-technicians", findTechnicians)
		customer.POST("/book-technician", bookTechnician)
		customer.POST("/submit-review", submitReview)
	}

	technician := authed.Group("/", technicianOnly)
	{
		technician.POST("/update-availability", updateAvailability)
	}
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}
