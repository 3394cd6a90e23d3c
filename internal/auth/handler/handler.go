package handler

import (
	"errors"
	"net/http"

	"finlight-auth/internal/auth"
	"finlight-auth/internal/auth/provider"
	"finlight-auth/internal/logger"
	"finlight-auth/internal/middleware"
	"finlight-auth/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	coordinator *auth.Coordinator
	flows       *provider.Registry
	normalizers *provider.NormalizerSet
	cookieOpts  session.CookieOptions
}

func NewHandler(
	coordinator *auth.Coordinator,
	flows *provider.Registry,
	normalizers *provider.NormalizerSet,
	cookieOpts session.CookieOptions,
) *Handler {
	return &Handler{
		coordinator: coordinator,
		flows:       flows,
		normalizers: normalizers,
		cookieOpts:  cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, gate gin.HandlerFunc) {
	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/reissue", h.Reissue)

	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)

	protected := r.Group("/")
	protected.Use(gate)
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/api/me", h.Me)
}

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	flow, err := h.flows.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := flow.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	flow, err := h.flows.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	attrs, err := flow.Exchange(c.Request.Context(), code, codeVerifier)
	if err != nil {
		logger.Error("oauth exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	identity, err := h.normalizers.Normalize(providerName, attrs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	tokens, err := h.coordinator.FederatedLogin(c.Request.Context(), identity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	logger.Info("federated login", map[string]any{
		"provider": providerName,
		"subject":  tokens.Subject,
	})

	h.writeTokens(c, tokens)
}

// writeTokens emits the session cookie and the token response body.
// The coordinator has already saved the session token server-side, so
// the cookie is only ever issued for a token the store knows.
func (h *Handler) writeTokens(c *gin.Context, tokens *auth.Tokens) {
	session.SetCookie(c.Writer, tokens.SessionToken, tokens.SessionTTL, h.cookieOpts)

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"accessToken": tokens.AccessToken,
		"userId":      tokens.Subject,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNoSessionToken),
		errors.Is(err, auth.ErrInvalidSessionToken),
		errors.Is(err, auth.ErrSessionMismatch):
		// One body for all three; the distinction stays in the logs.
		logger.Warn("session rejected", map[string]any{
			"reason": err.Error(),
			"ip":     c.ClientIP(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
	case errors.Is(err, auth.ErrIdentityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, auth.ErrUnsupportedProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
	case errors.Is(err, auth.ErrStoreUnavailable):
		logger.Error("store unavailable", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		logger.Error("unhandled auth error", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func subject(c *gin.Context) (string, bool) {
	return middleware.SubjectFromContext(c.Request.Context())
}
