package core

import "github.com/gin-gonic/gin"

// respondError sends the unified error payload {"message": ...}.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
