package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-booking-server/middleware"
	"tech-booking-server/models"
	"tech-booking-server/services"
	"tech-booking-server/types"
)

type FindTechniciansRequest struct {
	Latitude    *types.Number `json:"latitude" binding:"required"`
	Longitude   *types.Number `json:"longitude" binding:"required"`
	ServiceType string        `json:"service_type"`
	MaxDistance *types.Number `json:"max_distance"`
}

type BookTechnicianRequest struct {
	TechnicianID   uint          `json:"technician_id" binding:"required"`
	ServiceType    string        `json:"service_type" binding:"required,max=100"`
	Description    string        `json:"description"`
	Address        string        `json:"address" binding:"max=200"`
	Latitude       *types.Number `json:"latitude"`
	Longitude      *types.Number `json:"longitude"`
	ScheduledDate  string        `json:"scheduled_date"`
	EstimatedHours *types.Number `json:"estimated_hours" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type SubmitReviewRequest struct {
	BookingID uint          `json:"booking_id" binding:"required"`
	Rating    *types.Number `json:"rating" binding:"required"`
	Review    string        `json:"review"`
}

// findTechnicians handles POST /find-technicians
func findTechnicians(c *gin.Context) {
	var req FindTechniciansRequest
	if !bindJSON(c, &req) {
		return
	}

	criteria := services.SearchCriteria{
		Latitude:    req.Latitude.Value,
		Longitude:   req.Longitude.Value,
		ServiceType: req.ServiceType,
		MaxDistance: req.MaxDistance.Ptr(),
	}
	if criteria.MaxDistance != nil && *criteria.MaxDistance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": "max_distance must not be negative",
		})
		return
	}

	matches, err := services.NewMatchingService(store(c)).FindTechnicians(criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"technicians": matches})
}

// bookTechnician handles POST /book-technician
func bookTechnician(c *gin.Context) {
	var req BookTechnicianRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := services.NewBookingService(store(c)).CreateBooking(middleware.CurrentUser(c), services.CreateBookingInput{
		TechnicianID:   req.TechnicianID,
		ServiceType:    req.ServiceType,
		Description:    req.Description,
		Address:        req.Address,
		Latitude:       req.Latitude.Ptr(),
		Longitude:      req.Longitude.Ptr(),
		ScheduledDate:  req.ScheduledDate,
		EstimatedHours: req.EstimatedHours.Value,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"booking_id": booking.ID,
		"message":    "Booking request sent successfully",
	})
}

// updateBookingStatus handles POST /update-booking-status
func updateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := services.NewBookingService(store(c)).UpdateStatus(middleware.CurrentUser(c), req.BookingID, models.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// submitReview handles POST /submit-review
func submitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := services.NewBookingService(store(c)).SubmitReview(middleware.CurrentUser(c), req.BookingID, req.Rating.Value, req.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
