package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
)

// AuthHandler handles registration and the session lifecycle.
type AuthHandler struct {
	userService portssvc.UserSvcFacade
	authService portssvc.AuthSvcFacade
	cookies     sessionCookies
	uploads     tempUploads
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, as portssvc.AuthSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: us,
		authService: as,
		cookies:     sessionCookies{secure: cfg.CookieSecure},
		uploads:     tempUploads{dir: cfg.UploadTempDir},
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account. The avatar image is required, the cover image optional.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param fullName formData string true "Full name"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Conflict (username or email exists)"
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) error {
	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err, "All fields are required")
	}

	avatarPath, err := h.uploads.save(c, "avatar")
	defer h.uploads.remove(c, avatarPath)
	if err != nil {
		return err
	}
	coverPath, err := h.uploads.save(c, "coverImage")
	defer h.uploads.remove(c, coverPath)
	if err != nil {
		return err
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req, avatarPath, coverPath)
	if err != nil {
		return err
	}

	respond(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
	return nil
}

// Login godoc
// @Summary User login
// @Description Verifies credentials, sets the accessToken and refreshToken cookies and returns both tokens.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) error {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err, "Invalid request payload")
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		return err
	}

	h.cookies.set(c, pair)
	respond(c, http.StatusOK, dto.ToLoginResponse(user, pair), "User logged in successfully")
	return nil
}

// Logout godoc
// @Summary User logout
// @Description Invalidates the stored refresh token and clears the session cookies.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context, identity *domain.User) error {
	if err := h.authService.Logout(c.Request.Context(), identity.UserID); err != nil {
		return err
	}

	h.cookies.clear(c)
	respond(c, http.StatusOK, nil, "User logged out")
	return nil
}

// RefreshAccessToken godoc
// @Summary Refresh the token pair
// @Description Exchanges the current refresh token (cookie or body) for a new token pair.
// @Tags users
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token, when not sent as cookie"
// @Success 200 {object} dto.APIResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshAccessToken(c *gin.Context) error {
	incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
	if incoming == "" {
		var req dto.RefreshTokenRequest
		// The body is optional, so a missing or malformed one just means no token.
		_ = c.ShouldBind(&req)
		incoming = req.RefreshToken
	}

	pair, err := h.authService.RefreshTokens(c.Request.Context(), incoming)
	if err != nil {
		return err
	}

	h.cookies.set(c, pair)
	respond(c, http.StatusOK, dto.ToRefreshTokenResponse(pair), "Access token refreshed")
	return nil
}
