package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AleksMarkov/LumenTask-server/internal/domain"
)

// GormBoardRepository implements BoardRepository using GORM.
type GormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository creates a new GORM-based board repository.
func NewGormBoardRepository(db *gorm.DB) *GormBoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board.
func (r *GormBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if board.ID == "" {
		board.ID = uuid.New().String()
	}

	model := domain.BoardToModel(board)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	board.CreatedAt = model.CreatedAt
	board.UpdatedAt = model.UpdatedAt
	return nil
}

// ListByOwner returns all boards belonging to the owner.
func (r *GormBoardRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Board, error) {
	var models []domain.BoardModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	boards := make([]domain.Board, 0, len(models))
	for i := range models {
		boards = append(boards, *models[i].ToDomain())
	}
	return boards, nil
}

// GetByID retrieves a board by ID, scoped to the owner.
func (r *GormBoardRepository) GetByID(ctx context.Context, ownerID, boardID string) (*domain.Board, error) {
	var model domain.BoardModel
	result := r.db.WithContext(ctx).First(&model, "id = ? AND owner_id = ?", boardID, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update applies a partial update to a board, scoped to the owner.
func (r *GormBoardRepository) Update(ctx context.Context, ownerID, boardID string, patch BoardPatch) (*domain.Board, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.Background != nil {
		updates["background"] = *patch.Background
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&domain.BoardModel{}).
			Where("id = ? AND owner_id = ?", boardID, ownerID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrBoardNotFound
		}
	}

	return r.GetByID(ctx, ownerID, boardID)
}

// Delete removes a board, scoped to the owner.
func (r *GormBoardRepository) Delete(ctx context.Context, ownerID, boardID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", boardID, ownerID).
		Delete(&domain.BoardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}
