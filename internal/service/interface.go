package service

import (
	"context"

	"github.com/AleksMarkov/LumenTask-server/internal/domain"
)

// UserService covers profile, theme, and avatar operations for the
// authenticated user.
type UserService interface {
	GetMe(ctx context.Context, userID string) (*domain.UserResponse, error)
	UpdateProfile(ctx context.Context, email string, req *domain.UpdateProfileRequest) (*domain.ProfileResponse, error)
	UpdateTheme(ctx context.Context, email, theme string) (string, error)
	// UpdateAvatar uploads the temp file at localPath to the media store,
	// persists the derived avatar URL, and returns it. The temp file is
	// always removed before returning.
	UpdateAvatar(ctx context.Context, userID, localPath string) (string, error)
}

// BoardService covers board CRUD for the authenticated owner.
type BoardService interface {
	CreateBoard(ctx context.Context, ownerID string, req *domain.CreateBoardRequest) (*domain.Board, error)
	ListBoards(ctx context.Context, ownerID string) ([]domain.Board, error)
	GetBoard(ctx context.Context, ownerID, boardID string) (*domain.Board, error)
	UpdateBoard(ctx context.Context, ownerID, boardID string, req *domain.UpdateBoardRequest) (*domain.Board, error)
	DeleteBoard(ctx context.Context, ownerID, boardID string) error
}

// SupportService sends transactional support email.
type SupportService interface {
	SendHelpEmail(ctx context.Context, displayName, replyEmail, comment string) error
}
