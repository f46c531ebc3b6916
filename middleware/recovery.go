package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ServerErrorPage is the template rendered for 5xx page requests.
const ServerErrorPage = "500.html"

// Recovery turns a panic into a 500, rendered as a page for browsers and as
// JSON otherwise.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		RespondServerError(c)
	})
}

// RespondServerError aborts with the generic server error response.
func RespondServerError(c *gin.Context) {
	if WantsHTML(c) {
		c.HTML(http.StatusInternalServerError, ServerErrorPage, gin.H{})
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "An unexpected error occurred",
	})
}
