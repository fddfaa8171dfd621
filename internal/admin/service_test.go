package admin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/equza-living-co/go-services/internal/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.AdminConfig{
		Email:           "admin@equza.com",
		PasswordHash:    string(hash),
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
	return NewService(cfg, NewMemoryAccountRepository(), NewMemorySessionRepository())
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "Admin@Equza.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	_, err = svc.Login(ctx, "admin@equza.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login(ctx, "someone@else.com", "correct-horse")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAccessTokenVerifies(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "admin@equza.com", "correct-horse")
	require.NoError(t, err)

	ver := NewJWTVerifier("test-secret")
	tok, err := ver.Verify(ctx, pair.AccessToken)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	assert.Equal(t, "admin@equza.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])

	_, err = NewJWTVerifier("other-secret").Verify(ctx, pair.AccessToken)
	assert.Error(t, err)
	_, err = ver.Verify(ctx, "not.a.token")
	assert.Error(t, err)
}

func TestRefreshRotates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "admin@equza.com", "correct-horse")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// the old refresh token is single-use
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "admin@equza.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, svc.Logout(ctx, ""))
}

func TestMemoryRepositoriesConcurrentAccess(t *testing.T) {
	accounts := NewMemoryAccountRepository()
	sessions := NewMemorySessionRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := accounts.UpsertByEmail(ctx, &Account{Email: "admin@equza.com", Name: "Admin"})
			assert.NoError(t, err)
			assert.NoError(t, sessions.Create(ctx, &Session{
				RefreshToken: "tok",
				Email:        "admin@equza.com",
				ExpiresAt:    time.Now().UTC().Add(time.Hour),
			}))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := accounts.GetByEmail(ctx, "admin@equza.com")
			assert.NoError(t, err)
			_, err = sessions.GetByRefresh(ctx, "tok")
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	a, err := accounts.GetByEmail(ctx, "admin@equza.com")
	require.NoError(t, err)
	require.NotNil(t, a)

	// reads hand out copies, not the stored record
	a.Name = "clobbered"
	again, err := accounts.GetByEmail(ctx, "admin@equza.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin", again.Name)
}

func TestExpiredSessionRejected(t *testing.T) {
	repo := NewMemorySessionRepository()
	require.NoError(t, repo.Create(context.Background(), &Session{
		RefreshToken: "stale",
		Email:        "admin@equza.com",
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	}))

	sess, err := ValidateRefresh(context.Background(), repo, "stale")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
