package respond

import "github.com/gin-gonic/gin"

// JSON writes a successful JSON response.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
