package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/utils"
	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/huangang/boardmaster/pkg/response"
)

const (
	ContextUserID = logger.ContextUserID
	ContextEmail  = "email"
)

// AuthRequired is a middleware that checks for a valid JWT token and
// stores the caller's user id in the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, response.NewUnauthorized("authorization header required"))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Abort(c, response.NewUnauthorized("invalid authorization header format"))
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Abort(c, response.NewUnauthorized("invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// GetEmail gets the current user's email from context
func GetEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}
