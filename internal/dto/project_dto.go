package dto

import (
	"time"

	"github.com/google/uuid"

	"codetogether-api/internal/domain"
)

// ProjectRequest is used for both creating and replacing a project
type ProjectRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=255" example:"Toy compiler"`
	Description string            `json:"description" binding:"required" example:"A compiler for a tiny language"`
	Difficulty  domain.Difficulty `json:"difficulty" binding:"required,oneof=easy medium hard" example:"medium"`
}

type ProjectResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func ToProjectResponse(p *domain.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Difficulty:  p.Difficulty,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
