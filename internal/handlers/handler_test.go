package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/handlers"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
)

// envelope decodes both the success and the error response shapes.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []string        `json:"errors"`
}

// HandlerTestSuite serves requests through the real route table with mocked services.
type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	cfg             *config.Config
	mockUserService *MockUserService
	mockAuthService *MockAuthService
	identity        *domain.User
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		IsProduction:   true,
		CORSOrigin:     "*",
		CookieSecure:   true,
		LoginRateLimit: "100-M",
		UploadTempDir:  suite.T().TempDir(),
	}
	suite.mockUserService = new(MockUserService)
	suite.mockAuthService = new(MockAuthService)
	suite.identity = &domain.User{
		UserID:       uuid.NewString(),
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice Liddell",
		WatchHistory: []string{},
	}
	suite.buildRouter()
}

func (suite *HandlerTestSuite) buildRouter() {
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User: suite.mockUserService,
		Auth: suite.mockAuthService,
	}, nil)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	var body envelope
	if w.Body.Len() > 0 {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	}
	return w, body
}

func (suite *HandlerTestSuite) jsonRequest(method, url string, payload any) *http.Request {
	var buf bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a form with fields and files (field name -> file name).
func (suite *HandlerTestSuite) multipartRequest(method, url string, fields, files map[string]string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		suite.Require().NoError(mw.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := mw.CreateFormFile(field, name)
		suite.Require().NoError(err)
		_, err = fw.Write([]byte("fake image bytes"))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(mw.Close())
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// authorize makes the mocked auth service accept token for the suite identity.
func (suite *HandlerTestSuite) authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	suite.mockAuthService.On("AuthenticateAccessToken", anyCtx, token).Return(suite.identity, nil).Once()
}

func (suite *HandlerTestSuite) tokenPair() *domain.TokenPair {
	return &domain.TokenPair{
		AccessToken:      "access-" + uuid.NewString(),
		RefreshToken:     "refresh-" + uuid.NewString(),
		AccessExpiresAt:  time.Now().Add(time.Hour),
		RefreshExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func hasPrefix(prefix string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, prefix) }
}
