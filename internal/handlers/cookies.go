package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
)

// sessionCookies writes the HttpOnly token cookies.
type sessionCookies struct {
	secure bool
}

func (s sessionCookies) set(c *gin.Context, pair *domain.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, maxAge(pair.AccessExpiresAt), "/", "", s.secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, maxAge(pair.RefreshExpiresAt), "/", "", s.secure, true)
}

func (s sessionCookies) clear(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", s.secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", s.secure, true)
}

// maxAge is the cookie lifetime in seconds, matching the token expiry.
func maxAge(expiresAt time.Time) int {
	secs := int(time.Until(expiresAt).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}
