package domain

import (
	"time"
)

// Board represents a task board owned by a single user.
type Board struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	Icon       string    `json:"icon,omitempty"`
	Background string    `json:"background,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateBoardRequest represents a board creation request.
type CreateBoardRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=100"`
	Icon       string `json:"icon"`
	Background string `json:"background"`
}

// UpdateBoardRequest represents a board update request.
type UpdateBoardRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=100"`
	Icon       *string `json:"icon"`
	Background *string `json:"background"`
}
