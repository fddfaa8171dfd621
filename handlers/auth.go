package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/equza-living-co/go-services/internal/admin"
	"github.com/equza-living-co/go-services/pkg/logger"
	"github.com/equza-living-co/go-services/pkg/middleware"
)

// LoginRequest supports two modes: the built-in password flow and an ID token
// from the configured OIDC provider.
type LoginRequest struct {
	Mode     string `json:"mode" binding:"required"` // "password" | "oidc"
	Email    string `json:"email"`
	Password string `json:"password"`
	IDToken  string `json:"idToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthHandler serves the admin authentication endpoints.
type AuthHandler struct {
	svc       *admin.Service
	oidc      middleware.Verifier
	blacklist *admin.RedisBlacklist
	accessTTL time.Duration
}

func NewAuthHandler(svc *admin.Service, oidcVerifier middleware.Verifier, blacklist *admin.RedisBlacklist, accessTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, oidc: oidcVerifier, blacklist: blacklist, accessTTL: accessTTL}
}

func (h *AuthHandler) Register(r *gin.Engine) {
	a := r.Group("/api/admin/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}

	var pair *admin.TokenPair
	var err error
	switch req.Mode {
	case "password":
		pair, err = h.svc.Login(c.Request.Context(), req.Email, req.Password)
	case "oidc":
		if h.oidc == nil {
			respondError(c, http.StatusBadRequest, "OIDC login is not configured.")
			return
		}
		if req.IDToken == "" {
			respondError(c, http.StatusBadRequest, "The request was invalid.")
			return
		}
		var tok middleware.Token
		tok, err = h.oidc.Verify(c.Request.Context(), req.IDToken)
		if err == nil {
			var claims map[string]interface{}
			if cErr := tok.Claims(&claims); cErr != nil {
				err = cErr
			} else {
				pair, err = h.svc.LoginFromClaims(c.Request.Context(), claims)
			}
		}
	default:
		respondError(c, http.StatusBadRequest, "Unsupported login mode.")
		return
	}

	if err != nil {
		logger.Warnf("admin login failed (mode=%s): %v", req.Mode, err)
		respondError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	respondData(c, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	respondData(c, http.StatusOK, pair)
}

// Logout drops the refresh session and, when a blacklist is configured,
// revokes the presented access token for the rest of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		logger.Warnf("logout: session delete failed: %v", err)
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		if err := h.blacklist.Revoke(c.Request.Context(), token, h.accessTTL); err != nil {
			logger.Warnf("logout: token revoke failed: %v", err)
		}
	}
	respondData(c, http.StatusOK, gin.H{"loggedOut": true})
}
