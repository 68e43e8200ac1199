package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// userKey is the key used to store the authenticated user in the request context.
// Using a custom type prevents collisions.
const userKey = contextKey("user")

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetIdentityFromCtx retrieves the authenticated user from a standard context.
func GetIdentityFromCtx(ctx context.Context) (*domain.User, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// GetIdentityFromContext retrieves the authenticated user from the Gin context.
// It returns the user and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (*domain.User, bool) {
	if val, exists := c.Get(string(userKey)); exists {
		if user, ok := val.(*domain.User); ok && user != nil {
			return user, true
		}
	}
	return GetIdentityFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetIdentityFromContext(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}
