package domain

// User is a registered account. HashedPassword is never serialized.
type User struct {
	BaseModel
	Email          string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Username       string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_username" json:"username"`
	HashedPassword string  `gorm:"type:varchar(255);not null" json:"-"`
	AvatarURL      *string `gorm:"type:varchar(1024)" json:"avatar_url"`
	IsVerified     bool    `gorm:"not null;default:false" json:"is_verified"`

	Projects     []Project     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Applications []Application `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
