// internal/middleware/auth_middleware.go
package middleware

import (
	"strings"

	"journal-service/internal/pkg/apierror"
	"journal-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenValidator checks an access token and returns the subject user ID.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (string, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Auth validates the bearer token and stores the user ID in the request
// context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			response.Err(c, apierror.Unauthorized("Missing authorization token"))
			return
		}

		userID, err := m.validator.ValidateAccessToken(token)
		if err != nil {
			response.Err(c, err)
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// ExtractToken pulls the bearer token from the Authorization header, falling
// back to the token query param for websocket clients that cannot set
// headers.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}

// GetUserID reads the authenticated user ID set by Auth.
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// MustGetUserID gets the authenticated user ID or panics. Only valid on
// routes behind Auth.
func MustGetUserID(c *gin.Context) string {
	id, ok := GetUserID(c)
	if !ok {
		panic("user_id not found in context")
	}
	return id
}
