package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codetogether-api/internal/dto"
	"codetogether-api/internal/response"
	"codetogether-api/internal/service"
)

type ApplicationHandler struct {
	applicationService service.ApplicationService
	logger             *zap.Logger
}

func NewApplicationHandler(applicationService service.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		logger:             logger,
	}
}

// CreateApplication godoc
// @Summary      Apply to a position
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        positionId path string true "Position ID (UUID)"
// @Param        request body dto.ApplicationRequest true "Application message"
// @Success      201 {object} response.SuccessResponse{data=dto.ApplicationResponse}
// @Failure      400 {object} response.ErrorResponse "Owner applying, already applied, or no vacant slots"
// @Failure      404 {object} response.ErrorResponse "Position not found"
// @Router       /v1/positions/{positionId}/applications [post]
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	positionID, ok := parseUUIDParam(c, "positionId", "position")
	if !ok {
		return
	}

	var req dto.ApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Create(c.Request.Context(), positionID, &req, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, application)
}

// ListApplications godoc
// @Summary      Applications to a position
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        positionId path string true "Position ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ApplicationResponse}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Router       /v1/positions/{positionId}/applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	positionID, ok := parseUUIDParam(c, "positionId", "position")
	if !ok {
		return
	}

	applications, err := h.applicationService.ListByPosition(c.Request.Context(), positionID, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, applications)
}

// UpdateApplication godoc
// @Summary      Edit the message of an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId path string true "Application ID (UUID)"
// @Param        request body dto.ApplicationRequest true "Application message"
// @Success      200 {object} response.SuccessResponse{data=dto.ApplicationResponse}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Router       /v1/applications/{applicationId} [put]
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	applicationID, ok := parseUUIDParam(c, "applicationId", "application")
	if !ok {
		return
	}

	var req dto.ApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Update(c.Request.Context(), applicationID, &req, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, application)
}

// DeleteApplication godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId path string true "Application ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=bool}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Router       /v1/applications/{applicationId} [delete]
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	applicationID, ok := parseUUIDParam(c, "applicationId", "application")
	if !ok {
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), applicationID, authData.UserID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, true)
}

// ApproveApplication godoc
// @Summary      Approve a pending application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId path string true "Application ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ApplicationResponse}
// @Failure      400 {object} response.ErrorResponse "Not pending, or no vacant slots"
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Router       /v1/applications/{applicationId}/approved [post]
func (h *ApplicationHandler) ApproveApplication(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	applicationID, ok := parseUUIDParam(c, "applicationId", "application")
	if !ok {
		return
	}

	application, err := h.applicationService.Approve(c.Request.Context(), applicationID, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, application)
}

// RejectApplication godoc
// @Summary      Reject a pending application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId path string true "Application ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ApplicationResponse}
// @Failure      400 {object} response.ErrorResponse "Not pending"
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Router       /v1/applications/{applicationId}/rejected [post]
func (h *ApplicationHandler) RejectApplication(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	applicationID, ok := parseUUIDParam(c, "applicationId", "application")
	if !ok {
		return
	}

	application, err := h.applicationService.Reject(c.Request.Context(), applicationID, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, application)
}
