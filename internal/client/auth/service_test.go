package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/client/api"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/fieldkeeper/internal/crypto"
	pkgapi "github.com/iudanet/fieldkeeper/pkg/api"
)

const (
	testUser     = "j.doe-01"
	testPassword = "correct horse battery"
)

var testNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, client *api.ClientAPIMock) (*AuthService, *boltdb.Storage) {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := NewService(client, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return testNow }
	return s, store
}

func TestRegister(t *testing.T) {
	client := &api.ClientAPIMock{
		RegisterFunc: func(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
			return &pkgapi.RegisterResponse{UserID: "user-1", Message: "ok"}, nil
		},
	}
	s, _ := newTestService(t, client)

	res, err := s.Register(context.Background(), testUser, testPassword)
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.UserID)
	assert.Equal(t, testUser, res.Username)

	calls := client.RegisterCalls()
	require.Len(t, calls, 1)
	req := calls[0].Req
	assert.Equal(t, testUser, req.Username)
	assert.Equal(t, res.PublicSalt, req.PublicSalt)
	assert.Len(t, req.AuthKeyHash, 64, "hex sha256")
	assert.NotContains(t, req.AuthKeyHash, testPassword)

	// хеш воспроизводим из пароля и соли
	authKey, err := crypto.DeriveAuthKeyFromBase64Salt(testPassword, testUser, req.PublicSalt)
	require.NoError(t, err)
	hash, err := crypto.HashAuthKey(authKey)
	require.NoError(t, err)
	assert.Equal(t, hash, req.AuthKeyHash)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{name: "empty username", username: "", password: testPassword, wantErr: "invalid username"},
		{name: "short password", username: testUser, password: "short", wantErr: "invalid password"},
		{name: "password with username", username: testUser, password: "x" + testUser + "1234567", wantErr: "invalid password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.ClientAPIMock{}
			s, _ := newTestService(t, client)

			_, err := s.Register(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, client.RegisterCalls())
		})
	}
}

func TestRegister_ServerError(t *testing.T) {
	client := &api.ClientAPIMock{
		RegisterFunc: func(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
			return nil, &api.StatusError{StatusCode: http.StatusConflict, Message: "user already exists"}
		},
	}
	s, _ := newTestService(t, client)

	_, err := s.Register(context.Background(), testUser, testPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration failed")
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))
}

func loginClient(salt string) *api.ClientAPIMock {
	return &api.ClientAPIMock{
		GetSaltFunc: func(ctx context.Context, username string) (*pkgapi.SaltResponse, error) {
			return &pkgapi.SaltResponse{PublicSalt: salt}, nil
		},
		LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
			return &pkgapi.TokenResponse{
				UserID:           "user-1",
				AccessToken:      "access-1",
				RefreshToken:     "refresh-1",
				ExpiresIn:        900,
				RefreshExpiresIn: 3600,
			}, nil
		},
	}
}

func TestLogin_SavesSession(t *testing.T) {
	salt, err := crypto.GenerateSaltBase64()
	require.NoError(t, err)
	client := loginClient(salt)
	s, store := newTestService(t, client)
	ctx := context.Background()

	res, err := s.Login(ctx, testUser, testPassword)
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.UserID)
	assert.Equal(t, testNow.Add(15*time.Minute).Unix(), res.ExpiresAt.Unix())

	auth, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, &storage.AuthData{
		Username:         testUser,
		UserID:           "user-1",
		AccessToken:      "access-1",
		RefreshToken:     "refresh-1",
		PublicSalt:       salt,
		ExpiresAt:        testNow.Add(15 * time.Minute).Unix(),
		RefreshExpiresAt: testNow.Add(time.Hour).Unix(),
	}, auth)

	assert.Equal(t, testUser, client.LoginCalls()[0].Req.Username)
}

func TestLogin_BadSalt(t *testing.T) {
	client := loginClient("%%%not-base64")
	s, _ := newTestService(t, client)

	_, err := s.Login(context.Background(), testUser, testPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to derive auth key")
	assert.Empty(t, client.LoginCalls())
}

func TestLogin_UnknownUser(t *testing.T) {
	client := &api.ClientAPIMock{
		GetSaltFunc: func(ctx context.Context, username string) (*pkgapi.SaltResponse, error) {
			return nil, &api.StatusError{StatusCode: http.StatusNotFound}
		},
	}
	s, store := newTestService(t, client)

	_, err := s.Login(context.Background(), testUser, testPassword)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))

	_, err = store.GetAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func seedSession(t *testing.T, store storage.AuthStorage, accessExp, refreshExp time.Time) {
	t.Helper()
	require.NoError(t, store.SaveAuth(context.Background(), &storage.AuthData{
		Username:         testUser,
		UserID:           "user-1",
		AccessToken:      "access-old",
		RefreshToken:     "refresh-old",
		PublicSalt:       "salt",
		ExpiresAt:        accessExp.Unix(),
		RefreshExpiresAt: refreshExp.Unix(),
	}))
}

func TestAccessToken_Valid(t *testing.T) {
	client := &api.ClientAPIMock{}
	s, store := newTestService(t, client)
	seedSession(t, store, testNow.Add(10*time.Minute), testNow.Add(time.Hour))

	token, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-old", token)
	assert.Empty(t, client.RefreshCalls())
}

func TestAccessToken_RefreshesNearExpiry(t *testing.T) {
	client := &api.ClientAPIMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error) {
			return &pkgapi.TokenResponse{
				AccessToken:  "access-new",
				RefreshToken: "refresh-new",
				ExpiresIn:    900,
			}, nil
		},
	}
	s, store := newTestService(t, client)
	seedSession(t, store, testNow.Add(10*time.Second), testNow.Add(time.Hour))

	token, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-new", token)
	require.Len(t, client.RefreshCalls(), 1)
	assert.Equal(t, "refresh-old", client.RefreshCalls()[0].RefreshToken)

	auth, err := store.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-new", auth.RefreshToken)
	assert.Equal(t, "user-1", auth.UserID, "user id kept when the server omits it")
	assert.Equal(t, testUser, auth.Username)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), auth.RefreshExpiresAt)
	assert.Equal(t, testNow.Add(15*time.Minute).Unix(), auth.ExpiresAt)
}

func TestAccessToken_Errors(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		s, _ := newTestService(t, &api.ClientAPIMock{})
		_, err := s.AccessToken(context.Background())
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.ErrorIs(t, err, storage.ErrAuthNotFound)
	})

	t.Run("refresh token expired", func(t *testing.T) {
		client := &api.ClientAPIMock{}
		s, store := newTestService(t, client)
		seedSession(t, store, testNow.Add(-time.Hour), testNow.Add(-time.Minute))

		_, err := s.AccessToken(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Empty(t, client.RefreshCalls())
	})

	t.Run("refresh rejected", func(t *testing.T) {
		client := &api.ClientAPIMock{
			RefreshFunc: func(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error) {
				return nil, &api.StatusError{StatusCode: http.StatusUnauthorized}
			},
		}
		s, store := newTestService(t, client)
		seedSession(t, store, testNow, testNow.Add(time.Hour))

		_, err := s.AccessToken(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.True(t, api.IsUnauthorized(err))
	})

	t.Run("server unreachable", func(t *testing.T) {
		netErr := errors.New("connection refused")
		client := &api.ClientAPIMock{
			RefreshFunc: func(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error) {
				return nil, netErr
			},
		}
		s, store := newTestService(t, client)
		seedSession(t, store, testNow, testNow.Add(time.Hour))

		_, err := s.AccessToken(context.Background())
		assert.ErrorIs(t, err, netErr)
		assert.NotErrorIs(t, err, ErrSessionExpired)
	})
}

func TestLogout(t *testing.T) {
	tests := []struct {
		serverErr error
		name      string
		seed      bool
	}{
		{name: "server acknowledges", seed: true},
		{name: "server unreachable", seed: true, serverErr: errors.New("connection refused")},
		{name: "no session", seed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.ClientAPIMock{
				LogoutFunc: func(ctx context.Context, accessToken, refreshToken string) error {
					return tt.serverErr
				},
			}
			s, store := newTestService(t, client)
			if tt.seed {
				seedSession(t, store, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
			}

			require.NoError(t, s.Logout(context.Background()))

			_, err := store.GetAuth(context.Background())
			assert.ErrorIs(t, err, storage.ErrAuthNotFound)
			if tt.seed {
				require.Len(t, client.LogoutCalls(), 1)
				assert.Equal(t, "access-old", client.LogoutCalls()[0].AccessToken)
				assert.Equal(t, "refresh-old", client.LogoutCalls()[0].RefreshToken)
			} else {
				assert.Empty(t, client.LogoutCalls())
			}
		})
	}
}

func TestIsAuthenticated(t *testing.T) {
	s, store := newTestService(t, &api.ClientAPIMock{})
	ctx := context.Background()

	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	seedSession(t, store, time.Now().Add(time.Minute), time.Now().Add(time.Hour))
	ok, err = s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
