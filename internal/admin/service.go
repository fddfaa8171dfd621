package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/equza-living-co/go-services/internal/config"
)

var ErrBadCredentials = errors.New("invalid email or password")

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Service implements the admin login flow: password check against the
// configured bcrypt hash, account upsert, then an access/refresh token pair.
type Service struct {
	cfg      config.AdminConfig
	accounts AccountRepository
	sessions SessionRepository
}

func NewService(cfg config.AdminConfig, accounts AccountRepository, sessions SessionRepository) *Service {
	return &Service{cfg: cfg, accounts: accounts, sessions: sessions}
}

// Login validates the credentials and issues a token pair. The comparison is
// constant-time via bcrypt; a wrong email takes the same path as a wrong
// password.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}
	hash := s.cfg.PasswordHash
	if email != strings.ToLower(s.cfg.Email) {
		// burn a comparison anyway so timing does not reveal valid emails
		hash = "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva"
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	account, err := s.accounts.UpsertByEmail(ctx, &Account{Email: email, Name: "Administrator"})
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, account)
}

// LoginFromClaims upserts an account from verified OIDC claims and issues a
// token pair. Only the configured admin email is accepted.
func (s *Service) LoginFromClaims(ctx context.Context, claims map[string]interface{}) (*TokenPair, error) {
	email, _ := claims["email"].(string)
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || email != strings.ToLower(s.cfg.Email) {
		return nil, ErrBadCredentials
	}
	name, _ := claims["name"].(string)
	sub, _ := claims["sub"].(string)
	account, err := s.accounts.UpsertByEmail(ctx, &Account{Email: email, Name: name, Sub: sub})
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, account)
}

// Refresh rotates the refresh token and mints a new access token.
func (s *Service) Refresh(ctx context.Context, refresh string) (*TokenPair, error) {
	sess, err := ValidateRefresh(ctx, s.sessions, refresh)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrBadCredentials
	}
	if err := s.sessions.DeleteByRefresh(ctx, refresh); err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByEmail(ctx, sess.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = &Account{Email: sess.Email}
	}
	return s.issue(ctx, account)
}

// Logout drops the refresh session. Access token revocation is handled
// separately by the blacklist.
func (s *Service) Logout(ctx context.Context, refresh string) error {
	if refresh == "" {
		return nil
	}
	return s.sessions.DeleteByRefresh(ctx, refresh)
}

func (s *Service) issue(ctx context.Context, account *Account) (*TokenPair, error) {
	access, err := GenerateAccessToken(s.cfg.JWTSecret, account, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := NewRefreshSession(ctx, s.sessions, account.Email, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL / time.Second),
	}, nil
}
