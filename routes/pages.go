package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-booking-server/middleware"
	"tech-booking-server/models"
	"tech-booking-server/services"
)

const (
	customerDashboardPath   = "/customer/dashboard"
	technicianDashboardPath = "/technician/dashboard"
	customerBookingsPath    = "/customer/bookings"
	technicianBookingsPath  = "/technician/bookings"
)

// index sends users to their dashboard, everyone else to the login page.
func index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	switch {
	case user == nil:
		c.Redirect(http.StatusFound, middleware.LoginPath)
	case user.IsCustomer():
		c.Redirect(http.StatusFound, customerDashboardPath)
	default:
		c.Redirect(http.StatusFound, technicianDashboardPath)
	}
}

func loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

func registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func findTechniciansPage(c *gin.Context) {
	c.HTML(http.StatusOK, "find_technicians.html", gin.H{
		"Title": "Find Technicians",
		"User":  middleware.CurrentUser(c),
	})
}

func customerDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Role != models.RoleCustomer {
		c.Redirect(http.StatusFound, technicianDashboardPath)
		return
	}

	bookings, err := services.NewAccountService(store(c)).RecentBookings(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, "customer_dashboard.html", gin.H{
		"Title":    "Dashboard",
		"User":     user,
		"UserRole": string(models.RoleCustomer),
		"Bookings": bookings,
	})
}

func technicianDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Role != models.RoleTechnician {
		c.Redirect(http.StatusFound, customerDashboardPath)
		return
	}

	dashboard, err := services.NewAccountService(store(c)).TechnicianDashboard(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, "technician_dashboard.html", gin.H{
		"Title":          "Dashboard",
		"User":           user,
		"UserRole":       string(models.RoleTechnician),
		"Bookings":       dashboard.Bookings,
		"Profile":        dashboard.Profile,
		"TotalCompleted": dashboard.TotalCompleted,
		"TotalEarnings":  dashboard.TotalEarnings,
	})
}

func customerBookings(c *gin.Context) {
	bookingsPage(c, models.RoleCustomer, technicianBookingsPath)
}

func technicianBookings(c *gin.Context) {
	bookingsPage(c, models.RoleTechnician, customerBookingsPath)
}

// bookingsPage lists every booking of the user; a user on the other role's
// page is redirected to their own.
func bookingsPage(c *gin.Context, role models.UserRole, otherPath string) {
	user := middleware.CurrentUser(c)
	if user.Role != role {
		c.Redirect(http.StatusFound, otherPath)
		return
	}

	bookings, err := services.NewAccountService(store(c)).Bookings(user, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, "bookings.html", gin.H{
		"Title":    "My Bookings",
		"User":     user,
		"UserRole": string(role),
		"Bookings": bookings,
	})
}
