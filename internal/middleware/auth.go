package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/policy"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextUser   = "auth_user"
	ContextToken  = "auth_token"
)

// Auth checks the bearer token: JWT signature plus the server-side
// token record, so revoked tokens are rejected even before expiry.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		user, claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, user.Role)
		c.Set(ContextUser, user)
		c.Set(ContextToken, token)

		c.Next()
	}
}

// RequireVerified rejects accounts that have not confirmed their email.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil || !user.HasVerifiedEmail() {
			c.JSON(http.StatusForbidden, gin.H{"message": "Your email address is not verified"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAbility gates a route on the role policy.
func RequireAbility(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.Can(GetRole(c), action, resource) {
			c.JSON(http.StatusForbidden, gin.H{"message": "This action is unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}

// GetUser gets the authenticated account from context
func GetUser(c *gin.Context) *models.User {
	if user, exists := c.Get(ContextUser); exists {
		return user.(*models.User)
	}
	return nil
}

// GetToken gets the raw bearer token from context
func GetToken(c *gin.Context) string {
	if token, exists := c.Get(ContextToken); exists {
		return token.(string)
	}
	return ""
}
