package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AleksMarkov/LumenTask-server/internal/domain"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID retrieves a user by ID.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByEmail retrieves a user by email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UpdateByID applies a partial update keyed by identifier and returns the
// committed record.
func (r *GormUserRepository) UpdateByID(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	return r.update(ctx, "id = ?", id, patch)
}

// UpdateByEmail applies a partial update keyed by email and returns the
// committed record.
func (r *GormUserRepository) UpdateByEmail(ctx context.Context, email string, patch UserPatch) (*domain.User, error) {
	return r.update(ctx, "email = ?", email, patch)
}

func (r *GormUserRepository) update(ctx context.Context, cond string, key string, patch UserPatch) (*domain.User, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	if patch.Theme != nil {
		updates["theme"] = *patch.Theme
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
			Where(cond, key).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}

	// Re-read so the caller sees the committed state, timestamps included.
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, cond, key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}
