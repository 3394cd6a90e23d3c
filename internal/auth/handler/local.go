package handler

import (
	"net/http"

	"finlight-auth/internal/logger"
	"finlight-auth/internal/session"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.coordinator.SignUp(
		c.Request.Context(),
		req.Email,
		req.Nickname,
		req.Password,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tokens, err := h.coordinator.Login(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	logger.Info("local login", map[string]any{
		"subject": tokens.Subject,
		"ip":      c.ClientIP(),
	})

	h.writeTokens(c, tokens)
}

// Reissue rotates the session token from the cookie. The old token is
// single-use: replaying it after a successful rotation is rejected.
func (h *Handler) Reissue(c *gin.Context) {
	var sessionToken string
	if cookie, err := c.Request.Cookie(session.CookieName); err == nil {
		sessionToken = cookie.Value
	}

	tokens, err := h.coordinator.Rotate(c.Request.Context(), sessionToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeTokens(c, tokens)
}

func (h *Handler) Logout(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.coordinator.Logout(c.Request.Context(), sub); err != nil {
		h.writeError(c, err)
		return
	}

	session.ClearCookie(c.Writer, h.cookieOpts)
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	sub, ok := subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.coordinator.Me(c.Request.Context(), sub)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
