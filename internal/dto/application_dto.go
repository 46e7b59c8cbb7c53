package dto

import (
	"time"

	"github.com/google/uuid"

	"codetogether-api/internal/domain"
)

// ApplicationRequest carries the applicant's message on create and update
type ApplicationRequest struct {
	Message string `json:"message" binding:"required,min=1,max=1023" example:"Hello, I have plenty of experience with this framework"`
}

type ApplicationResponse struct {
	ID         uuid.UUID                `json:"id"`
	UserID     uuid.UUID                `json:"user_id"`
	PositionID uuid.UUID                `json:"position_id"`
	Message    string                   `json:"message"`
	Status     domain.ApplicationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

func ToApplicationResponse(a *domain.Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		PositionID: a.PositionID,
		Message:    a.Message,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func ToApplicationResponses(applications []*domain.Application) []*ApplicationResponse {
	out := make([]*ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		out = append(out, ToApplicationResponse(a))
	}
	return out
}
