package utils

import "github.com/gin-gonic/gin"

// JSONError writes the {"error": message} body the dashboard reads.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// JSONMessage writes a confirmation message, optionally with the affected
// record under key.
func JSONMessage(c *gin.Context, code int, message string, key string, data interface{}) {
	body := gin.H{"message": message}
	if key != "" {
		body[key] = data
	}
	c.JSON(code, body)
}
