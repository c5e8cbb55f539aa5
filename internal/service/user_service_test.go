package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AleksMarkov/LumenTask-server/internal/cache"
	"github.com/AleksMarkov/LumenTask-server/internal/config"
	"github.com/AleksMarkov/LumenTask-server/internal/domain"
	"github.com/AleksMarkov/LumenTask-server/internal/media"
	"github.com/AleksMarkov/LumenTask-server/internal/repository"
	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users       map[string]*domain.User // keyed by email
	updateCalls int
	lastPatch   repository.UserPatch
	updateErr   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) byID(id string) *domain.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u := r.byID(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateByID(ctx context.Context, id string, patch repository.UserPatch) (*domain.User, error) {
	u := r.byID(id)
	if u == nil {
		if r.updateErr != nil {
			r.updateCalls++
			return nil, r.updateErr
		}
		return nil, repository.ErrUserNotFound
	}
	return r.apply(u, patch)
}

func (r *fakeUserRepo) UpdateByEmail(ctx context.Context, email string, patch repository.UserPatch) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return r.apply(u, patch)
}

func (r *fakeUserRepo) apply(u *domain.User, patch repository.UserPatch) (*domain.User, error) {
	r.updateCalls++
	r.lastPatch = patch
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Theme != nil {
		u.Theme = *patch.Theme
	}
	if patch.AvatarURL != nil {
		u.AvatarURL = *patch.AvatarURL
	}
	cp := *u
	return &cp, nil
}

// fakeMediaStore records uploads and derivations.
type fakeMediaStore struct {
	uploadCalls    int
	transformCalls int
	lastParams     media.UploadParams
	uploadErr      error
	transformErr   error
}

func (m *fakeMediaStore) Upload(ctx context.Context, localPath string, params media.UploadParams) (*media.UploadResult, error) {
	m.uploadCalls++
	m.lastParams = params
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	key := params.Namespace + "/" + params.ObjectID
	return &media.UploadResult{
		ObjectID:  params.ObjectID,
		Key:       key,
		PublicURL: "https://cdn.example.com/" + key,
	}, nil
}

func (m *fakeMediaStore) TransformedURL(ctx context.Context, key string, t media.Transform) (string, error) {
	m.transformCalls++
	if m.transformErr != nil {
		return "", m.transformErr
	}
	return "https://cdn.example.com/" + key + "?w=300&h=300", nil
}

// fakeCache is an in-memory UserCache recording writes and invalidations.
type fakeCache struct {
	users    map[string]*domain.User
	setCalls int
	deleted  [][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{users: map[string]*domain.User{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.User, error) {
	if u, ok := c.users[key]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, cache.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, key string, user *domain.User, ttl time.Duration) error {
	c.setCalls++
	cp := *user
	c.users[key] = &cp
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys)
	for _, k := range keys {
		delete(c.users, k)
	}
	return nil
}

func (c *fakeCache) KeyByID(userID string) string { return "user:id:" + userID }

func (c *fakeCache) KeyByEmail(email string) string { return "user:email:" + email }

func (c *fakeCache) Close() error { return nil }

func testUser() *domain.User {
	return &domain.User{
		ID:           "user-1",
		Email:        "a@x.com",
		Name:         "Ann",
		PasswordHash: "$old-hash",
		Theme:        "light",
	}
}

func newTestUserService(repo repository.UserRepository, store media.Store) UserService {
	return newTestUserServiceWithCache(repo, store, nil)
}

func newTestUserServiceWithCache(repo repository.UserRepository, store media.Store, userCache cache.UserCache) UserService {
	return NewUserService(repo, store, userCache,
		config.MediaConfig{
			AvatarNamespace: "avatars",
			AvatarWidth:     300,
			AvatarHeight:    300,
			AvatarGravity:   "face",
			AvatarRadius:    "max",
		},
		config.ProfileConfig{BcryptCost: bcrypt.MinCost},
		time.Minute,
	)
}

func writeTempUpload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o600))
	return path
}

func TestUpdateProfile_NotFound_NoUpdateAttempted(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeMediaStore{})

	_, err := svc.UpdateProfile(context.Background(), "ghost@x.com", &domain.UpdateProfileRequest{})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateProfile_HashesPasswordAndOmitsHashFromProjection(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc := newTestUserService(repo, &fakeMediaStore{})

	name := "Annie"
	password := "s3cret-pass"
	resp, err := svc.UpdateProfile(context.Background(), "a@x.com", &domain.UpdateProfileRequest{
		Name:     &name,
		Password: &password,
	})
	require.NoError(t, err)

	assert.Equal(t, "Annie", resp.Name)
	assert.Equal(t, "a@x.com", resp.Email)

	// Stored hash verifies against the plaintext and is not the plaintext.
	require.NotNil(t, repo.lastPatch.PasswordHash)
	stored := *repo.lastPatch.PasswordHash
	assert.NotEqual(t, password, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)))
}

func TestUpdateProfile_WithoutPassword_LeavesHashUntouched(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc := newTestUserService(repo, &fakeMediaStore{})

	name := "Annie"
	_, err := svc.UpdateProfile(context.Background(), "a@x.com", &domain.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	assert.Nil(t, repo.lastPatch.PasswordHash)
	assert.Equal(t, "$old-hash", repo.users["a@x.com"].PasswordHash)
}

func TestUpdateProfile_RepositoryFailure(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	repo.updateErr = errors.New("connection reset")
	svc := newTestUserService(repo, &fakeMediaStore{})

	_, err := svc.UpdateProfile(context.Background(), "a@x.com", &domain.UpdateProfileRequest{})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeRepository, appErr.Code)
}

func TestUpdateTheme_StoresAndReturnsTheme(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc := newTestUserService(repo, &fakeMediaStore{})

	theme, err := svc.UpdateTheme(context.Background(), "a@x.com", "dark")
	require.NoError(t, err)

	assert.Equal(t, "dark", theme)
	assert.Equal(t, "dark", repo.users["a@x.com"].Theme)
}

func TestUpdateTheme_Idempotent(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc := newTestUserService(repo, &fakeMediaStore{})

	first, err := svc.UpdateTheme(context.Background(), "a@x.com", "dark")
	require.NoError(t, err)
	second, err := svc.UpdateTheme(context.Background(), "a@x.com", "dark")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "dark", repo.users["a@x.com"].Theme)
}

func TestUpdateTheme_NotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeMediaStore{})

	_, err := svc.UpdateTheme(context.Background(), "ghost@x.com", "dark")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateAvatar_Success_RemovesTempFile(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	store := &fakeMediaStore{}
	svc := newTestUserService(repo, store)

	path := writeTempUpload(t)

	url, err := svc.UpdateAvatar(context.Background(), "user-1", path)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/avatars/user-1?w=300&h=300", url)
	assert.Equal(t, media.UploadParams{Namespace: "avatars", ObjectID: "user-1"}, store.lastParams)
	assert.Equal(t, url, repo.users["a@x.com"].AvatarURL)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be gone after the pipeline")
}

func TestUpdateAvatar_UploadFails_TempRemovedAndNoRepoWrite(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	store := &fakeMediaStore{uploadErr: errors.New("bucket unavailable")}
	svc := newTestUserService(repo, store)

	path := writeTempUpload(t)

	_, err := svc.UpdateAvatar(context.Background(), "user-1", path)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeUpstream, appErr.Code)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be gone even when upload fails")
	assert.Zero(t, repo.updateCalls, "no user-record write after a failed upload")
}

func TestUpdateAvatar_MissingFile_NothingRuns(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	store := &fakeMediaStore{}
	svc := newTestUserService(repo, store)

	_, err := svc.UpdateAvatar(context.Background(), "user-1", "")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Zero(t, store.uploadCalls)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateAvatar_RepoFailure_AfterUpload(t *testing.T) {
	user := testUser()
	repo := newFakeUserRepo(user)
	repo.updateErr = errors.New("connection reset")
	store := &fakeMediaStore{}
	svc := newTestUserService(repo, store)

	path := writeTempUpload(t)

	_, err := svc.UpdateAvatar(context.Background(), "user-1", path)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeRepository, appErr.Code)
	assert.Equal(t, 1, store.uploadCalls)
}

func TestGetMe_ReturnsUserWithoutHash(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc := newTestUserService(repo, &fakeMediaStore{})

	resp, err := svc.GetMe(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, "a@x.com", resp.Email)
}

func TestGetMe_NotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeMediaStore{})

	_, err := svc.GetMe(context.Background(), "ghost")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestGetMe_CacheHitSkipsRepository(t *testing.T) {
	// The repository is empty: a successful read can only come from cache.
	repo := newFakeUserRepo()
	userCache := newFakeCache()
	cached := testUser()
	userCache.users[userCache.KeyByID(cached.ID)] = cached
	svc := newTestUserServiceWithCache(repo, &fakeMediaStore{}, userCache)

	resp, err := svc.GetMe(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Ann", resp.Name)
	assert.Zero(t, userCache.setCalls)
}

func TestGetMe_CacheMissFillsCache(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	userCache := newFakeCache()
	svc := newTestUserServiceWithCache(repo, &fakeMediaStore{}, userCache)

	resp, err := svc.GetMe(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, 1, userCache.setCalls)
	assert.Contains(t, userCache.users, userCache.KeyByID("user-1"))
}

func TestUpdateProfile_InvalidatesBothCacheKeys(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	userCache := newFakeCache()
	svc := newTestUserServiceWithCache(repo, &fakeMediaStore{}, userCache)

	name := "Annie"
	_, err := svc.UpdateProfile(context.Background(), "a@x.com", &domain.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	require.Len(t, userCache.deleted, 1)
	assert.ElementsMatch(t,
		[]string{userCache.KeyByID("user-1"), userCache.KeyByEmail("a@x.com")},
		userCache.deleted[0])
}

func TestUpdateTheme_InvalidatesBothCacheKeys(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	userCache := newFakeCache()
	svc := newTestUserServiceWithCache(repo, &fakeMediaStore{}, userCache)

	_, err := svc.UpdateTheme(context.Background(), "a@x.com", "dark")
	require.NoError(t, err)

	require.Len(t, userCache.deleted, 1)
	assert.ElementsMatch(t,
		[]string{userCache.KeyByID("user-1"), userCache.KeyByEmail("a@x.com")},
		userCache.deleted[0])
}

func TestUpdateAvatar_InvalidatesBothCacheKeys(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	userCache := newFakeCache()
	// A stale entry must not survive the avatar change.
	userCache.users[userCache.KeyByID("user-1")] = testUser()
	svc := newTestUserServiceWithCache(repo, &fakeMediaStore{}, userCache)

	path := writeTempUpload(t)

	_, err := svc.UpdateAvatar(context.Background(), "user-1", path)
	require.NoError(t, err)

	require.Len(t, userCache.deleted, 1)
	assert.ElementsMatch(t,
		[]string{userCache.KeyByID("user-1"), userCache.KeyByEmail("a@x.com")},
		userCache.deleted[0])
	assert.NotContains(t, userCache.users, userCache.KeyByID("user-1"))
}
