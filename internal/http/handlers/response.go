package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondOK writes the success envelope: {"success":true,"data":{...}}
func respondOK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes the failure envelope with a stable status code, the
// HTTP status name and one actionable message
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"status":  status,
			"name":    http.StatusText(status),
			"message": message,
		},
	})
}
