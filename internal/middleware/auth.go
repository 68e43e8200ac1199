package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
)

// AccessTokenCookie is the name of the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// RefreshTokenCookie is the name of the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// AuthMiddleware creates a Gin middleware handler that resolves the caller from
// its access token and rejects the request when that fails.
func AuthMiddleware(authSvc portssvc.AuthSvcFacade) gin.HandlerFunc {
	return authenticate(authSvc, true)
}

// OptionalAuthMiddleware resolves the caller when a valid access token is
// present and lets anonymous requests through otherwise.
func OptionalAuthMiddleware(authSvc portssvc.AuthSvcFacade) gin.HandlerFunc {
	return authenticate(authSvc, false)
}

func authenticate(authSvc portssvc.AuthSvcFacade, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := ExtractAccessToken(c)
		if token == "" {
			if !required {
				c.Next()
				return
			}
			logger.Warn("Access token missing")
			abortWithError(c, apperrors.NewUnauthorizedError("Unauthorized request"))
			return
		}

		user, err := authSvc.AuthenticateAccessToken(c.Request.Context(), token)
		if err != nil {
			if !required {
				logger.Debug("Ignoring invalid access token on optional route", slog.String("error", err.Error()))
				c.Next()
				return
			}
			logger.Warn("Access token rejected", slog.String("error", err.Error()))
			abortWithError(c, err)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := WithUser(c.Request.Context(), user)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userKey), user)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// ExtractAccessToken returns the access token from the accessToken cookie or,
// failing that, from an "Authorization: Bearer <token>" header.
func ExtractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abortWithError(c *gin.Context, err error) {
	status, body := ErrorEnvelope(err)
	c.AbortWithStatusJSON(status, body)
}
