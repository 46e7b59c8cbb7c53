package domain

import (
	"github.com/google/uuid"
)

// ApplicationStatus represents the lifecycle state of an application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application is a user's request to fill a position.
// A user may apply to a given position at most once.
type Application struct {
	BaseModel
	UserID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_applications_user_position,priority:1" json:"user_id"`
	PositionID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_applications_user_position,priority:2;index:idx_applications_position_status,priority:1" json:"position_id"`
	Message    string            `gorm:"type:varchar(1023);not null" json:"message"`
	Status     ApplicationStatus `gorm:"type:varchar(16);not null;default:'PENDING';index:idx_applications_position_status,priority:2" json:"status"`
}

// IsPending reports whether the application can still be decided
func (a *Application) IsPending() bool {
	return a.Status == ApplicationPending
}
