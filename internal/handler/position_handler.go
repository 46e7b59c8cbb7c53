package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codetogether-api/internal/dto"
	"codetogether-api/internal/response"
	"codetogether-api/internal/service"
)

type PositionHandler struct {
	positionService service.PositionService
	logger          *zap.Logger
}

func NewPositionHandler(positionService service.PositionService, logger *zap.Logger) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
		logger:          logger,
	}
}

// CreatePosition godoc
// @Summary      Add a position to a project
// @Tags         positions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.PositionRequest true "Position"
// @Success      201 {object} response.SuccessResponse{data=dto.PositionResponse}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /v1/projects/{projectId}/positions [post]
func (h *PositionHandler) CreatePosition(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.PositionRequest
	if !bindJSON(c, &req) {
		return
	}

	position, err := h.positionService.Create(c.Request.Context(), projectID, &req, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, position)
}

// ListPositions godoc
// @Summary      Positions of a project
// @Tags         positions
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.PositionResponse}
// @Router       /v1/projects/{projectId}/positions [get]
func (h *PositionHandler) ListPositions(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	positions, err := h.positionService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, positions)
}

// UpdatePosition godoc
// @Summary      Replace a position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        positionId path string true "Position ID (UUID)"
// @Param        request body dto.PositionRequest true "Position"
// @Success      200 {object} response.SuccessResponse{data=dto.PositionResponse}
// @Failure      403 {object} response.ErrorResponse "Access denied"
// @Failure      404 {object} response.ErrorResponse "Position not found"
// @Router       /v1/positions/{positionId} [put]
func (h *PositionHandler) UpdatePosition(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	positionID, ok := parseUUIDParam(c, "positionId", "position")
	if !ok {
		return
	}

	var req dto.PositionRequest
	if !bindJSON(c, &req) {
		return
	}

	position, err := h.positionService.Update(c.Request.Context(), positionID, &req, authData.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, position)
}

// DeletePosition godoc
// @Summary      Delete a position and its applications
// @Tags         positions
// @Produce      json
// @Security     BearerAuth
// @Param        positionId path string true "Position ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=bool}
// @Router       /v1/positions/{positionId} [delete]
func (h *PositionHandler) DeletePosition(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	positionID, ok := parseUUIDParam(c, "positionId", "position")
	if !ok {
		return
	}

	if err := h.positionService.Delete(c.Request.Context(), positionID, authData.UserID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, true)
}
