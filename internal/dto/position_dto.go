package dto

import (
	"github.com/google/uuid"

	"codetogether-api/internal/domain"
)

// PositionRequest is used for both creating and replacing a position.
// Count defaults to 1 when omitted.
type PositionRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255" example:"Backend developer"`
	Description *string `json:"description" example:"Go, PostgreSQL"`
	Count       *int    `json:"count" binding:"omitempty,min=1" example:"2"`
}

// CountOrDefault returns the requested headcount or 1
func (r *PositionRequest) CountOrDefault() int {
	if r.Count == nil {
		return 1
	}
	return *r.Count
}

type PositionResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Count       int       `json:"count"`
	ProjectID   uuid.UUID `json:"project_id"`
}

func ToPositionResponse(p *domain.Position) *PositionResponse {
	return &PositionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Count:       p.Count,
		ProjectID:   p.ProjectID,
	}
}

func ToPositionResponses(positions []*domain.Position) []*PositionResponse {
	out := make([]*PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, ToPositionResponse(p))
	}
	return out
}
