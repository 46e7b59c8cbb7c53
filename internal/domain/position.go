package domain

import (
	"github.com/google/uuid"
)

// Position is an open slot in a project; Count is the number of people it can take
type Position struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_positions_project_id" json:"project_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Count       int       `gorm:"not null;default:1;check:chk_positions_count,count >= 1" json:"count"`

	Applications []Application `gorm:"foreignKey:PositionID;constraint:OnDelete:CASCADE" json:"-"`
}
