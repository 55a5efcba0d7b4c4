package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/diplomadesk/internal/devserver/users"
)

// RefreshCookieName is the cookie that authorizes the refresh endpoint.
const RefreshCookieName = "diplomadesk_refresh"

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type profileResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Role        string `json:"role"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeStatus(c, http.StatusBadRequest, ResultError, "invalid request")
		return
	}

	pair, err := h.users.Login(c.Request.Context(), req.Identifier, req.Secret)
	if err != nil {
		if errors.Is(err, users.ErrUnauthorized) {
			h.metrics.Logins.WithLabelValues("rejected").Inc()
			writeResult(c, ResultError, "invalid identifier or password")
			return
		}
		h.serverError(c, err)
		return
	}

	h.metrics.Logins.WithLabelValues("ok").Inc()
	h.setRefreshCookie(c, pair.RefreshToken)
	writeOK(c, tokenResponse{AccessToken: pair.AccessToken})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(RefreshCookieName)

	pair, err := h.users.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, users.ErrUnauthorized) {
			h.metrics.Refresh.WithLabelValues("rejected").Inc()
			h.clearRefreshCookie(c)
			writeUnauthorized(c, "session expired")
			return
		}
		h.serverError(c, err)
		return
	}

	h.metrics.Refresh.WithLabelValues("ok").Inc()
	h.setRefreshCookie(c, pair.RefreshToken)
	writeOK(c, tokenResponse{AccessToken: pair.AccessToken})
}

// Logout revokes the refresh session, if any, and clears the cookie. It
// succeeds even without a valid bearer token.
func (h *Handler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(RefreshCookieName)
	if err := h.users.Logout(c.Request.Context(), refreshToken); err != nil {
		h.log.Warn(c.Request.Context(), "failed to revoke refresh token", "error", err)
	}
	h.clearRefreshCookie(c)
	writeOK(c, nil)
}

func (h *Handler) AccountInfo(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		writeUnauthorized(c, "unauthorized")
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeUnauthorized(c, "unknown account")
			return
		}
		h.serverError(c, err)
		return
	}

	writeOK(c, profileResponse{
		ID:          user.ID,
		Username:    user.UserName,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, int(h.users.RefreshTTL().Seconds()), "/", "", false, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", false, true)
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	writeStatus(c, http.StatusInternalServerError, ResultError, "server error")
}
