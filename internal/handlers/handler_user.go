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

// UserHandler handles profile and channel requests.
type UserHandler struct {
	userService portssvc.UserSvcFacade
	uploads     tempUploads
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: us,
		uploads:     tempUploads{dir: cfg.UploadTempDir},
	}
}

// ChangePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context, identity *domain.User) error {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err, "All fields are required")
	}

	if err := h.userService.ChangePassword(c.Request.Context(), identity.UserID, req); err != nil {
		return err
	}

	respond(c, http.StatusOK, nil, "Password changed successfully")
	return nil
}

// CurrentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/current-user [get]
func (h *UserHandler) CurrentUser(c *gin.Context, identity *domain.User) error {
	respond(c, http.StatusOK, dto.ToUserResponse(identity), "Current user fetched successfully")
	return nil
}

// UpdateAccount godoc
// @Summary Update account details
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.UpdateAccountRequest true "New full name and email"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context, identity *domain.User) error {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err, "All fields are required")
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), identity.UserID, req)
	if err != nil {
		return err
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully")
	return nil
}

// UpdateAvatar godoc
// @Summary Replace the avatar image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context, identity *domain.User) error {
	path, err := h.uploads.save(c, "avatar")
	defer h.uploads.remove(c, path)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), identity.UserID, path)
	if err != nil {
		return err
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), "Avatar image updated successfully")
	return nil
}

// UpdateCoverImage godoc
// @Summary Replace the cover image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c *gin.Context, identity *domain.User) error {
	path, err := h.uploads.save(c, "coverImage")
	defer h.uploads.remove(c, path)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateCoverImage(c.Request.Context(), identity.UserID, path)
	if err != nil {
		return err
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), "Cover image updated successfully")
	return nil
}

// ChannelProfile godoc
// @Summary Get a channel profile
// @Description Subscriber counts of a channel, and whether the caller (if authenticated) is subscribed.
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} dto.APIResponse{data=dto.ChannelProfileResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/channel/{username} [get]
func (h *UserHandler) ChannelProfile(c *gin.Context) error {
	viewerID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.userService.GetChannelProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		return err
	}

	respond(c, http.StatusOK, dto.ToChannelProfileResponse(profile), "User channel fetched successfully")
	return nil
}

// WatchHistory godoc
// @Summary Get the watch history
// @Description Watched videos in stored order, each with its owner's public fields.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.VideoResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/watch-history [get]
func (h *UserHandler) WatchHistory(c *gin.Context, identity *domain.User) error {
	videos, err := h.userService.GetWatchHistory(c.Request.Context(), identity.UserID)
	if err != nil {
		return err
	}

	respond(c, http.StatusOK, dto.ToWatchHistoryResponse(videos), "Watch history fetched successfully")
	return nil
}
