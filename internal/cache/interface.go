package cache

import (
	"context"
	"time"

	"github.com/AleksMarkov/LumenTask-server/internal/domain"
)

// UserCache caches user records keyed by identifier or email.
type UserCache interface {
	Get(ctx context.Context, key string) (*domain.User, error)
	Set(ctx context.Context, key string, user *domain.User, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	KeyByID(userID string) string
	KeyByEmail(email string) string
	Close() error
}
