package handler

import (
	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/apperr"
)

// fail writes the error with its mapped status. Internal details never
// reach the client; apperr.Message substitutes a generic message.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
}
