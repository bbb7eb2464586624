package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/powerise/corporate-site/internal/config"
	"github.com/powerise/corporate-site/internal/identity"
	"github.com/powerise/corporate-site/internal/session"
	"github.com/powerise/corporate-site/internal/tokens"
	"github.com/powerise/corporate-site/pkg/logger"
)

// LoginRequest is the admin console login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg   *config.Config
	store *session.Store
}

func NewAuthHandler(cfg *config.Config, store *session.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: store}
}

// Register routes under /api/auth
func (h *AuthHandler) Register(r *gin.Engine) {
	a := r.Group("/api/auth")
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
	a.GET("/session", h.Session)
}

// Login exchanges credentials at the identity provider and, for admin
// accounts, sets the session cookie. Provider failures map onto the
// fixed user-facing error vocabulary; a valid account without the
// admin claim is signed out and rejected with 403.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailure(c, err)
		return
	}

	u, _, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var pe *identity.ProviderError
		if errors.As(err, &pe) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": pe.Message()})
			return
		}
		if errors.Is(err, session.ErrNotAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": session.ErrNotAdmin.Error()})
			return
		}
		logger.Errorf("login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Login failed, please try again"})
		return
	}

	token, err := tokens.GenerateSessionToken(h.cfg, u, h.cfg.Session.TTL)
	if err != nil {
		logger.Errorf("session token mint: %v", err)
		h.store.Logout(c.Request.Context())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Login failed, please try again"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, token, int(h.cfg.Session.TTL.Seconds()), "/", "", false, true)
	logger.Infof("admin login: %s", u.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"uid":         u.UID,
			"email":       u.Email,
			"displayName": u.DisplayName,
		},
	})
}

// Logout clears the session cookie and signs the session store out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout(c.Request.Context())
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

// Session reports the current auth state. Callers use `initialized` to
// distinguish "not yet heard from the provider" from "confirmed signed
// out" and avoid redirecting too early.
func (h *AuthHandler) Session(c *gin.Context) {
	resp := gin.H{
		"state":       h.store.State().String(),
		"initialized": h.store.Initialized(),
		"isAdmin":     h.store.IsAdmin(),
	}
	if u := h.store.User(); u != nil {
		resp["user"] = gin.H{"uid": u.UID, "email": u.Email, "displayName": u.DisplayName}
	} else {
		resp["user"] = nil
	}
	c.JSON(http.StatusOK, resp)
}
