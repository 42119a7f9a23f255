package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/pkg/apperrors"
	"stock-impact-scanner/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// fakeUserRepo is an in-memory UserRepository with the same conflict and
// set-membership semantics as the Postgres implementation.
type fakeUserRepo struct {
	users map[string]*entity.User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("username or email: %w", apperrors.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
}

func (r *fakeUserRepo) AddFavoriteStock(_ context.Context, userID, symbol string) (bool, error) {
	for _, u := range r.users {
		if u.ID != userID {
			continue
		}
		for _, s := range u.FavoriteStocks {
			if s == symbol {
				return false, nil
			}
		}
		u.FavoriteStocks = append(u.FavoriteStocks, symbol)
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) RemoveFavoriteStock(_ context.Context, userID, symbol string) (bool, error) {
	for _, u := range r.users {
		if u.ID != userID {
			continue
		}
		for i, s := range u.FavoriteStocks {
			if s == symbol {
				u.FavoriteStocks = append(u.FavoriteStocks[:i], u.FavoriteStocks[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func newTestAuthService(repo *fakeUserRepo, ttl time.Duration) AuthService {
	return NewAuthService(repo, AuthConfig{
		SecretKey:  "test-secret",
		TokenTTL:   ttl,
		BcryptCost: bcrypt.MinCost,
	}, testLogger())
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "john_doe", "john@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.HashedPassword)

	_, err = svc.Register(ctx, "john_doe", "other@example.com", "password123")
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane_smith", "jane@example.com", "password456")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "jane_smith", "password456")
	require.NoError(t, err)
	assert.Equal(t, "jane_smith", user.Username)

	_, err = svc.Authenticate(ctx, "jane_smith", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrAuth)

	_, err = svc.Authenticate(ctx, "nobody", "password456")
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestTokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "john_doe", "john@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.IssueToken("john_doe")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "john_doe", user.Username)
}

func TestTamperedTokenRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "john_doe", "john@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.IssueToken("john_doe")
	require.NoError(t, err)

	// Flipping a single byte anywhere must invalidate the token.
	raw := []byte(token)
	if raw[len(raw)-1] == 'A' {
		raw[len(raw)-1] = 'B'
	} else {
		raw[len(raw)-1] = 'A'
	}
	_, err = svc.ValidateToken(ctx, string(raw))
	assert.ErrorIs(t, err, apperrors.ErrAuth)

	_, err = svc.ValidateToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestExpiredTokenRejected(t *testing.T) {
	repo := newFakeUserRepo()
	ctx := context.Background()

	// The constructor replaces a non-positive TTL with the default, so build
	// the service directly to issue an already-expired token.
	svc := &authService{
		userRepo: repo,
		cfg: AuthConfig{
			SecretKey:  "test-secret",
			TokenTTL:   -time.Minute,
			BcryptCost: bcrypt.MinCost,
		},
		logger: testLogger(),
	}

	_, err := svc.Register(ctx, "john_doe", "john@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.IssueToken("john_doe")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "john_doe", "john@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.IssueToken("john_doe")
	require.NoError(t, err)

	delete(repo.users, "john_doe")

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}
