package handlers

import (
	"net/http"

	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireUserID pulls the authenticated user id set by the auth middleware.
func requireUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		utils.GetLogger().Error("Invalid user ID type", zap.Any("userID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type"})
		return "", false
	}
	return idStr, true
}
