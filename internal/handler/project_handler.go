package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codetogether-api/internal/dto"
	"codetogether-api/internal/response"
	"codetogether-api/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// CreateProject godoc
// @Summary      Create a project owned by the caller
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ProjectRequest true "Project"
// @Success      201 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, project)
}

// GetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /v1/projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, project)
}

// UpdateProject godoc
// @Summary      Replace a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.ProjectRequest true "Project"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Failure      404 {object} response.ErrorResponse
// @Router       /v1/projects/{projectId} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), projectID, &req, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary      Delete a project with its positions and applications
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=bool}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Failure      404 {object} response.ErrorResponse
// @Router       /v1/projects/{projectId} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), projectID, authData.UserID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, true)
}
