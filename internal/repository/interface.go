package repository

import (
	"context"
	"errors"

	"github.com/AleksMarkov/LumenTask-server/internal/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBoardNotFound = errors.New("board not found")
	ErrEmailExists   = errors.New("email already exists")
)

// UserPatch is a partial update of user fields. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	PasswordHash *string
	Theme        *string
	AvatarURL    *string
}

// UserRepository defines the interface for user data persistence.
// Lookups and updates are keyed by identifier or by email; a missing target
// always fails with ErrUserNotFound, never a silent empty result.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateByID(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	UpdateByEmail(ctx context.Context, email string, patch UserPatch) (*domain.User, error)
}

// BoardPatch is a partial update of board fields.
type BoardPatch struct {
	Title      *string
	Icon       *string
	Background *string
}

// BoardRepository defines the interface for board data persistence.
// All operations are ownership-scoped: a board belonging to another owner is
// indistinguishable from a missing one.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Board, error)
	GetByID(ctx context.Context, ownerID, boardID string) (*domain.Board, error)
	Update(ctx context.Context, ownerID, boardID string, patch BoardPatch) (*domain.Board, error)
	Delete(ctx context.Context, ownerID, boardID string) error
}
