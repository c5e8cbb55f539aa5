package domain

import (
	"time"
)

// User represents a user entity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Theme        string    `json:"theme"`
	AvatarURL    string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateProfileRequest represents a profile update request. All fields are
// optional; only supplied fields are written.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// UpdateThemeRequest represents a theme change request.
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark violet"`
}

// HelpEmailRequest represents a support request from the help form.
type HelpEmailRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Comment string `json:"comment" binding:"required"`
}

// ProfileResponse is the projection returned after a profile update.
// It deliberately carries only name and email; the credential hash and other
// sensitive fields are never echoed back.
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Theme     string    `json:"theme"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Theme:     u.Theme,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
