package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/equza-living-co/go-services/internal/admin"
	"github.com/equza-living-co/go-services/internal/config"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *admin.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.AdminConfig{
		Email:           "admin@equza.com",
		PasswordHash:    string(hash),
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
	svc := admin.NewService(cfg, admin.NewMemoryAccountRepository(), admin.NewMemorySessionRepository())

	r := gin.New()
	NewAuthHandler(svc, nil, nil, cfg.AccessTokenTTL).Register(r)
	return r, svc
}

func TestPasswordLogin(t *testing.T) {
	r, _ := newAuthRouter(t)

	code, env := doPost(t, r, "/api/admin/auth/login", `{
		"mode": "password", "email": "admin@equza.com", "password": "secret-pass"
	}`)
	require.Equal(t, 200, code)
	require.Nil(t, env.Error)

	var pair admin.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)

	code, env := doPost(t, r, "/api/admin/auth/login", `{
		"mode": "password", "email": "admin@equza.com", "password": "wrong"
	}`)
	require.Equal(t, 401, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid credentials.", *env.Error)

	code, _ = doPost(t, r, "/api/admin/auth/login", `{"mode": "carrier-pigeon"}`)
	assert.Equal(t, 400, code)

	code, _ = doPost(t, r, "/api/admin/auth/login", `{"email": "admin@equza.com"}`)
	assert.Equal(t, 400, code)
}

func TestOIDCLoginUnconfigured(t *testing.T) {
	r, _ := newAuthRouter(t)

	code, _ := doPost(t, r, "/api/admin/auth/login", `{"mode": "oidc", "idToken": "x.y.z"}`)
	assert.Equal(t, 400, code)
}

func TestRefreshFlow(t *testing.T) {
	r, _ := newAuthRouter(t)

	_, env := doPost(t, r, "/api/admin/auth/login", `{
		"mode": "password", "email": "admin@equza.com", "password": "secret-pass"
	}`)
	var pair admin.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	code, env := doPost(t, r, "/api/admin/auth/refresh", `{"refreshToken": "`+pair.RefreshToken+`"}`)
	require.Equal(t, 200, code)
	var next admin.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &next))
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// old token is spent
	code, _ = doPost(t, r, "/api/admin/auth/refresh", `{"refreshToken": "`+pair.RefreshToken+`"}`)
	assert.Equal(t, 401, code)
}

func TestLogout(t *testing.T) {
	r, _ := newAuthRouter(t)

	_, env := doPost(t, r, "/api/admin/auth/login", `{
		"mode": "password", "email": "admin@equza.com", "password": "secret-pass"
	}`)
	var pair admin.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	code, _ := doPost(t, r, "/api/admin/auth/logout", `{"refreshToken": "`+pair.RefreshToken+`"}`)
	require.Equal(t, 200, code)

	code, _ = doPost(t, r, "/api/admin/auth/refresh", `{"refreshToken": "`+pair.RefreshToken+`"}`)
	assert.Equal(t, 401, code)
}
