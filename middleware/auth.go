package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MahmoudEasa/ijar/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserContextKey is the gin context key holding the authenticated user id.
const UserContextKey = "userID"

// AuthMiddleware resolves the bearer token to a user id and aborts with 401
// when the token is missing or invalid.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, _ := claims["user_id"].(string)
		if _, err := primitive.ObjectIDFromHex(userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by AuthMiddleware.
func GetUserID(c *gin.Context) (primitive.ObjectID, error) {
	val, ok := c.Get(UserContextKey)
	if !ok {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	return primitive.ObjectIDFromHex(id)
}
