package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/models"
	"github.com/iudanet/fieldkeeper/internal/server/storage"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	userID := uuid.New().String()
	user := &models.User{
		ID:          userID,
		Username:    "worker-" + userID[:8],
		AuthKeyHash: "hash",
		PublicSalt:  "salt",
		CreatedAt:   time.Now(),
	}

	require.NoError(t, s.CreateUser(ctx, user))

	return userID
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		user *models.User
		name string
	}{
		{
			name: "create new user",
			user: &models.User{
				ID:          uuid.New().String(),
				Username:    "j.doe-01",
				AuthKeyHash: "hash123",
				PublicSalt:  "salt123",
				CreatedAt:   time.Now(),
			},
		},
		{
			name: "create user with last login",
			user: &models.User{
				ID:          uuid.New().String(),
				Username:    "a.smith",
				AuthKeyHash: "hash456",
				PublicSalt:  "salt456",
				CreatedAt:   time.Now(),
				LastLogin:   timePtr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.CreateUser(ctx, tt.user))

			retrieved, err := s.GetUserByID(ctx, tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.Username, retrieved.Username)
			assert.Equal(t, tt.user.AuthKeyHash, retrieved.AuthKeyHash)
			assert.Equal(t, tt.user.PublicSalt, retrieved.PublicSalt)
			assert.WithinDuration(t, tt.user.CreatedAt, retrieved.CreatedAt, time.Millisecond)
			if tt.user.LastLogin == nil {
				assert.Nil(t, retrieved.LastLogin)
			} else {
				require.NotNil(t, retrieved.LastLogin)
				assert.WithinDuration(t, *tt.user.LastLogin, *retrieved.LastLogin, time.Millisecond)
			}
		})
	}
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	first := &models.User{
		ID:          uuid.New().String(),
		Username:    "duplicate",
		AuthKeyHash: "hash1",
		PublicSalt:  "salt1",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, first))

	second := &models.User{
		ID:          uuid.New().String(),
		Username:    "duplicate",
		AuthKeyHash: "hash2",
		PublicSalt:  "salt2",
		CreatedAt:   time.Now(),
	}
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	created, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)

	tests := []struct {
		wantError error
		name      string
		username  string
	}{
		{name: "existing user", username: created.Username},
		{name: "unknown user", username: "nobody", wantError: storage.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
		})
	}
}

func TestUserStorage_GetUserByID_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user, err := s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	loginTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	require.NoError(t, s.UpdateLastLogin(ctx, userID, loginTime))

	user, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.True(t, loginTime.Equal(*user.LastLogin))

	err = s.UpdateLastLogin(ctx, "missing", loginTime)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
