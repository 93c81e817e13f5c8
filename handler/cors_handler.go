package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// allowedOriginSuffixes covers the hosting platforms' preview deployments,
// which get a fresh subdomain per build.
var allowedOriginSuffixes = []string{
	".lovableproject.com",
	".lovable.app",
	".vercel.app",
}

type CorsHandler struct {
	allowedOrigins []string
}

func NewCorsHandler(allowedOrigins []string) *CorsHandler {
	return &CorsHandler{
		allowedOrigins: allowedOrigins,
	}
}

// resolveOrigin echoes the request origin when it is allow-listed; anything
// else gets the first allow-listed origin, which denies the caller under
// strict CORS enforcement without leaking the allow list.
func (h *CorsHandler) resolveOrigin(origin string) string {
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return origin
		}
	}
	for _, suffix := range allowedOriginSuffixes {
		if strings.HasSuffix(origin, suffix) {
			return origin
		}
	}
	if len(h.allowedOrigins) > 0 {
		return h.allowedOrigins[0]
	}
	return ""
}

func (h *CorsHandler) CorsMiddleware(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin != "" {
		c.Writer.Header().Set("Access-Control-Allow-Origin", h.resolveOrigin(origin))
		c.Writer.Header().Set("Vary", "Origin")
	}
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(200)
		return
	}
	c.Next()
}
