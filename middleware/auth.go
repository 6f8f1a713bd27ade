package middleware

import (
	"net/http"
	"strings"
	"time"

	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const sessionCacheTTL = 15 * time.Minute

// JWTAuthUserMiddleware authenticates requests by Bearer token. The token
// must validate and its hash must still be the one stored for the user, so
// revocation takes effect immediately. Resolved sessions are cached in Redis
// to spare the database on the hot paths.
func JWTAuthUserMiddleware(users userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)

		if authCache != nil {
			if userID, err := authCache.Get(c.Request.Context(), "session:"+computedHash).Result(); err == nil && userID != "" {
				c.Set("userID", userID)
				c.Next()
				return
			}
		}

		usr, err := users.GetByTokenHash(computedHash)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or user not found"})
			return
		}

		if authCache != nil {
			authCache.Set(c.Request.Context(), "session:"+computedHash, usr.ID, sessionCacheTTL)
		}

		c.Set("userID", usr.ID)
		c.Next()
	}
}
