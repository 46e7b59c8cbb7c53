package domain

import (
	"github.com/google/uuid"
)

// Difficulty is the declared complexity of a project
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulties
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Project is owned by a single user and exposes positions
type Project struct {
	BaseModel
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_projects_owner_id" json:"owner_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Difficulty  Difficulty `gorm:"type:varchar(16);not null" json:"difficulty"`

	Positions []Position `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}
