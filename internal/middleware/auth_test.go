package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	panic("not used")
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	panic("not used")
}

func (m *mockAuthService) RefreshTokens(ctx context.Context, incoming string) (*domain.TokenPair, error) {
	panic("not used")
}

func (m *mockAuthService) AuthenticateAccessToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// identityRouter echoes the resolved user id, or "anonymous".
func identityRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		if user, ok := middleware.GetIdentityFromContext(c); ok {
			ctxUser, _ := middleware.GetIdentityFromCtx(c.Request.Context())
			c.String(http.StatusOK, user.UserID+"|"+ctxUser.UserID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	alice := &domain.User{UserID: "user-1", Username: "alice"}

	t.Run("bearer header", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("AuthenticateAccessToken", mock.Anything, "tok").Return(alice, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "bearer tok")
		w := httptest.NewRecorder()
		identityRouter(middleware.AuthMiddleware(svc)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1|user-1", w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := new(mockAuthService)

		w := httptest.NewRecorder()
		identityRouter(middleware.AuthMiddleware(svc)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"statusCode":401,"success":false,"message":"Unauthorized request","errors":[]}`, w.Body.String())
		svc.AssertNotCalled(t, "AuthenticateAccessToken", mock.Anything, mock.Anything)
	})

	t.Run("rejected token", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("AuthenticateAccessToken", mock.Anything, "stale").
			Return(nil, apperrors.NewUnauthorizedError("invalid access token")).Once()

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "stale"})
		w := httptest.NewRecorder()
		identityRouter(middleware.AuthMiddleware(svc)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid access token")
	})

	t.Run("optional route without token", func(t *testing.T) {
		svc := new(mockAuthService)

		w := httptest.NewRecorder()
		identityRouter(middleware.OptionalAuthMiddleware(svc)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("optional route with rejected token", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("AuthenticateAccessToken", mock.Anything, "stale").
			Return(nil, apperrors.NewUnauthorizedError("invalid access token")).Once()

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()
		identityRouter(middleware.OptionalAuthMiddleware(svc)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestExtractAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "cookie wins", cookie: "from-cookie", header: "Bearer from-header", want: "from-cookie"},
		{name: "bearer header", header: "Bearer from-header", want: "from-header"},
		{name: "case insensitive scheme", header: "BEARER abc", want: "abc"},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "bare scheme", header: "Bearer", want: ""},
		{name: "nothing", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: tc.cookie})
			}
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, middleware.ExtractAccessToken(c))
		})
	}
}
