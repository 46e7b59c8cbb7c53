package dto

import (
	"github.com/google/uuid"

	"codetogether-api/internal/domain"
)

// UpdateUserRequest replaces the mutable profile fields of the current user
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255" example:"dev"`
}

// AvatarUploadURLRequest asks for a presigned URL to upload an avatar image
type AvatarUploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255" example:"me.png"`
	ContentType string `json:"content_type" binding:"required" example:"image/png"`
}

// AvatarUploadURLResponse carries the presigned URL and the key to confirm later
type AvatarUploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileKey   string `json:"file_key"`
	ExpiresIn int    `json:"expires_in"`
}

// ConfirmAvatarRequest stores an uploaded object as the user's avatar
type ConfirmAvatarRequest struct {
	FileKey string `json:"file_key" binding:"required"`
}

// UserResponse is the public view of a user. The password hash is never exposed.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	AvatarURL  *string   `json:"avatar_url"`
	IsVerified bool      `json:"is_verified"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
	}
}
