package middleware

import (
	"net/http"
	"strings"
	"time"

	"sonar/internal/db"
	"sonar/internal/models"
	"sonar/internal/utils"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

const tokenCacheTTL = 5 * time.Minute

// LoadUser resolves the Authorization header ("Token <key>") to a user and
// sets it on the context. Missing or unknown tokens are not an error here;
// AuthRequired decides whether anonymous access is allowed.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := tokenFromHeader(c)
		if key == "" {
			c.Next()
			return
		}

		if userID, ok := cachedUserID(key); ok {
			var user models.User
			if err := db.DB.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
			c.Next()
			return
		}

		var token models.AuthToken
		if err := db.DB.Preload("User").Where("key = ?", key).First(&token).Error; err == nil {
			utils.GetCache().Set(cacheKey(key), token.UserID, tokenCacheTTL)
			user := token.User
			c.Set(CheckUserKey, &user)
		}
		c.Next()
	}
}

// AuthRequired rejects requests that did not resolve to a user
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func tokenFromHeader(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Token" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func cacheKey(key string) string {
	return "auth:token:" + key
}

func cachedUserID(key string) (uint, bool) {
	val := utils.GetCache().Get(cacheKey(key))
	if val == nil {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
