package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-booking-server/middleware"
	"tech-booking-server/services"
)

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// updateLocation handles POST /update-location
func updateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := services.NewAccountService(store(c)).UpdateLocation(middleware.CurrentUser(c), req.Latitude, req.Longitude); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// updateAvailability handles POST /update-availability
func updateAvailability(c *gin.Context) {
	var req UpdateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := services.NewAccountService(store(c)).SetAvailability(middleware.CurrentUser(c), *req.IsAvailable); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// userInfo handles GET /api/user-info
func userInfo(c *gin.Context) {
	info, err := services.NewAccountService(store(c)).UserInfo(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// listServices handles GET /api/services
func listServices(c *gin.Context) {
	names, err := services.NewAccountService(store(c)).ServiceNames()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": names})
}
