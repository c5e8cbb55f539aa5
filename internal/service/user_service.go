package service

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AleksMarkov/LumenTask-server/internal/audit"
	"github.com/AleksMarkov/LumenTask-server/internal/cache"
	"github.com/AleksMarkov/LumenTask-server/internal/config"
	"github.com/AleksMarkov/LumenTask-server/internal/domain"
	"github.com/AleksMarkov/LumenTask-server/internal/media"
	"github.com/AleksMarkov/LumenTask-server/internal/repository"
	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
	"github.com/AleksMarkov/LumenTask-server/pkg/log"
)

// userServiceImpl implements UserService.
type userServiceImpl struct {
	repo     repository.UserRepository
	media    media.Store
	cache    cache.UserCache
	mediaCfg config.MediaConfig
	profile  config.ProfileConfig
	cacheTTL time.Duration
}

// NewUserService creates a new user service. The cache is optional; pass nil
// to disable caching.
func NewUserService(
	repo repository.UserRepository,
	mediaStore media.Store,
	userCache cache.UserCache,
	mediaCfg config.MediaConfig,
	profileCfg config.ProfileConfig,
	cacheTTL time.Duration,
) UserService {
	return &userServiceImpl{
		repo:     repo,
		media:    mediaStore,
		cache:    userCache,
		mediaCfg: mediaCfg,
		profile:  profileCfg,
		cacheTTL: cacheTTL,
	}
}

// GetMe returns the current user, from cache when possible.
func (s *userServiceImpl) GetMe(ctx context.Context, userID string) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, s.cache.KeyByID(userID)); err == nil {
			resp := cached.ToResponse()
			return &resp, nil
		}
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get user")
		return nil, apperr.Repository("failed to get user", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cache.KeyByID(userID), user, s.cacheTTL); err != nil {
			l.Warn().Err(err).Msg("failed to cache user")
		}
	}

	resp := user.ToResponse()
	return &resp, nil
}

// UpdateProfile updates the caller's name and/or password and returns the
// name/email projection. The credential hash never appears in the result.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, email string, req *domain.UpdateProfileRequest) (*domain.ProfileResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		l.Error().Err(err).Msg("failed to get user for profile update")
		return nil, apperr.Repository("failed to get user", err)
	}

	patch := repository.UserPatch{Name: req.Name}

	if req.Password != nil {
		// Optional load-smoothing delay before the expensive hash.
		if s.profile.HashDelay > 0 {
			select {
			case <-time.After(s.profile.HashDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		cost := s.profile.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), cost)
		if err != nil {
			l.Error().Err(err).Msg("failed to hash password")
			return nil, apperr.Internal("failed to hash password", err)
		}
		hash := string(hashed)
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.UpdateByEmail(ctx, email, patch)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to update profile")
		return nil, apperr.Repository("failed to update profile", err)
	}

	s.invalidate(ctx, updated)
	audit.Log(ctx, audit.ActionUpdateProfile, updated.ID, "profile updated")

	// The projection is built only from the committed update result.
	return &domain.ProfileResponse{
		Name:  updated.Name,
		Email: updated.Email,
	}, nil
}

// UpdateTheme writes the theme field only and returns the stored value.
func (s *userServiceImpl) UpdateTheme(ctx context.Context, email, theme string) (string, error) {
	l := log.Ctx(ctx)

	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.NotFound("user not found")
		}
		l.Error().Err(err).Msg("failed to get user for theme update")
		return "", apperr.Repository("failed to get user", err)
	}

	updated, err := s.repo.UpdateByEmail(ctx, email, repository.UserPatch{Theme: &theme})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.NotFound("user not found")
		}
		l.Error().Err(err).Msg("failed to update theme")
		return "", apperr.Repository("failed to update theme", err)
	}

	s.invalidate(ctx, updated)
	audit.LogWithDetail(ctx, audit.ActionUpdateTheme, updated.ID, updated.Theme, "theme updated")

	return updated.Theme, nil
}

// UpdateAvatar runs the avatar pipeline: upload the temp file to the media
// store under a deterministic object ID, remove the temp file, derive the
// transformed URL, and persist it on the user record.
func (s *userServiceImpl) UpdateAvatar(ctx context.Context, userID, localPath string) (string, error) {
	l := log.Ctx(ctx)

	if localPath == "" {
		return "", apperr.BadRequest("please attach the avatar file")
	}

	result, uploadErr := s.media.Upload(ctx, localPath, media.UploadParams{
		Namespace: s.mediaCfg.AvatarNamespace,
		ObjectID:  userID,
	})

	// The temp file is removed after the upload attempt no matter how it
	// went; it is unrecoverable garbage either way. A removal failure is
	// logged but never overrides the pipeline outcome.
	if err := os.Remove(localPath); err != nil {
		l.Warn().Err(err).Str("path", localPath).Msg("failed to remove temp upload")
	}

	if uploadErr != nil {
		l.Error().Err(uploadErr).Str(log.FieldUserID, userID).Msg("avatar upload failed")
		return "", apperr.Upstream("failed to upload avatar", uploadErr)
	}

	avatarURL, err := s.media.TransformedURL(ctx, result.Key, media.Transform{
		Width:   s.mediaCfg.AvatarWidth,
		Height:  s.mediaCfg.AvatarHeight,
		Crop:    "fill",
		Gravity: s.mediaCfg.AvatarGravity,
		Radius:  s.mediaCfg.AvatarRadius,
		Border:  s.mediaCfg.AvatarBorder,
	})
	if err != nil {
		l.Error().Err(err).Str(log.FieldAvatarKey, result.Key).Msg("avatar transform failed")
		return "", apperr.Upstream("failed to transform avatar", err)
	}

	updated, err := s.repo.UpdateByID(ctx, userID, repository.UserPatch{AvatarURL: &avatarURL})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.NotFound("user not found")
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to persist avatar URL")
		return "", apperr.Repository("failed to update avatar", err)
	}

	s.invalidate(ctx, updated)
	audit.Log(ctx, audit.ActionUpdateAvatar, userID, "avatar updated")

	return updated.AvatarURL, nil
}

// invalidate drops both cache keys for the user after a mutation.
func (s *userServiceImpl) invalidate(ctx context.Context, user *domain.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.KeyByID(user.ID), s.cache.KeyByEmail(user.Email)); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to invalidate user cache")
	}
}
