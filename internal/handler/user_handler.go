package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codetogether-api/internal/dto"
	"codetogether-api/internal/response"
	"codetogether-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update current user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateUserRequest true "Profile fields"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse "Username already registered"
// @Router       /v1/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// DeleteMe godoc
// @Summary      Delete current user and everything they own
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=bool}
// @Router       /v1/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), authData.UserID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, true)
}

// GetUser godoc
// @Summary      Public profile
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /v1/users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// CreateAvatarUploadURL godoc
// @Summary      Presigned URL for uploading an avatar
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AvatarUploadURLRequest true "File metadata"
// @Success      200 {object} response.SuccessResponse{data=dto.AvatarUploadURLResponse}
// @Failure      503 {object} response.ErrorResponse "Storage not configured"
// @Router       /v1/users/me/avatar/upload-url [post]
func (h *UserHandler) CreateAvatarUploadURL(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.AvatarUploadURLRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.CreateAvatarUploadURL(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ConfirmAvatar godoc
// @Summary      Use an uploaded object as avatar
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ConfirmAvatarRequest true "Uploaded file key"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Router       /v1/users/me/avatar [put]
func (h *UserHandler) ConfirmAvatar(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.ConfirmAvatarRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.ConfirmAvatar(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}
