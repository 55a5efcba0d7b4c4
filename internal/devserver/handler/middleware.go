package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/diplomadesk/internal/devserver/auth"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

const (
	authClaimsKey   = "auth_claims"
	requestIDHeader = "X-Request-ID"
)

// AuthMiddleware rejects requests without a valid bearer token with 401.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(c, "missing token")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := h.users.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				writeUnauthorized(c, "token expired")
			} else {
				writeUnauthorized(c, "invalid token")
			}
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

func GetClaims(c *gin.Context) *auth.Claims {
	if value, ok := c.Get(authClaimsKey); ok {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// LoggingMiddleware logs one line per request and counts it.
func LoggingMiddleware(log logging.Logger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", c.GetHeader(requestIDHeader),
		}
		if status >= http.StatusInternalServerError {
			log.Error(c.Request.Context(), "request failed", args...)
			return
		}
		log.Debug(c.Request.Context(), "request", args...)
	}
}
