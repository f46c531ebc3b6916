package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tech-booking-server/apperrors"
	"tech-booking-server/middleware"
	"tech-booking-server/repository"
)

// store returns a repository bound to the request transaction.
func store(c *gin.Context) *repository.Store {
	return repository.New(middleware.Tx(c))
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return false
	}
	return true
}

// respondError maps a service error onto the API error body. Internal errors
// get the generic 500, which also rolls the transaction back.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Str("path", c.Request.URL.Path).Msg("Request failed")
		middleware.RespondServerError(c)
		return
	}
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}

// respondAuthError uses the {success, message} shape of the login and
// register endpoints.
func respondAuthError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"success": false, "message": apperrors.Message(err)})
}

func notFound(c *gin.Context) {
	if middleware.WantsHTML(c) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
