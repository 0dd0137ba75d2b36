package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	bearerPrefix  = "Bearer "
	subjectCtxKey = "auth.subject"
)

// requireAuth extracts and validates the bearer token and attaches the
// resolved subject to the request context. Every failure mode (missing
// header, wrong scheme, bad signature, expired) produces the same 401
// so callers learn nothing about why a token was rejected.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			writeUnauthorized(c)
			return
		}

		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			writeUnauthorized(c)
			return
		}

		subject, err := h.tokens.Validate(token)
		if err != nil {
			h.logger.Debugf("token rejected: %v", err)
			writeUnauthorized(c)
			return
		}

		c.Set(subjectCtxKey, subject)
		c.Next()
	}
}

func subjectFrom(c *gin.Context) (string, bool) {
	subject, ok := c.Get(subjectCtxKey)
	if !ok {
		return "", false
	}
	id, ok := subject.(string)
	return id, ok && id != ""
}

func writeUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
