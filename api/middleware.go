package api

import (
	"time"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ctxUsernameKey = "authUsername"
	ctxAdminKey    = "authAdmin"
	ctxTokenKey    = "authToken"
)

// RequireAuth gates a route on a valid session token carried in the
// configured header. A missing header is a client error (400); a token
// that fails signature, expiry or blacklist checks is 401. On success
// the resolved username, admin flag and raw token string are stored in
// the request context.
func RequireAuth(service auth.AuthUseCase, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(header)
		if tokenString == "" {
			writeError(c, domain.ErrTokenMissing)
			c.Abort()
			return
		}

		claims, err := service.ParseToken(c.Request.Context(), tokenString)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUsernameKey, claims.Username())
		c.Set(ctxAdminKey, claims.Admin)
		c.Set(ctxTokenKey, tokenString)
		c.Next()
	}
}

// RequireAdmin stacks on RequireAuth and rejects non-admin tokens. It
// must come after RequireAuth in the chain; without it no claims are
// in the context and every request is forbidden.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxAdminKey) {
			writeError(c, domain.ErrAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger emits one log line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
