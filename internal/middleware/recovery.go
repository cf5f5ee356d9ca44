package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics in
// page, API and stream handlers.
//
// Behavior:
//   - Logs the panic value, the stack, the request id and whether the
//     request belonged to a browser session.
//   - Responds 500 with a standardized JSON error. The panic value is not
//     sent to the client.
//   - When the response was already started (e.g. a hijacked websocket or a
//     half-rendered page) only aborts the chain.
//
// Returns:
//   - gin.HandlerFunc: A middleware function for use in Gin router.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			_, inSession := c.Get(SessionKey)
			log := logger.Ctx(c.Request.Context(), *logger.L())
			log.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("path", c.Request.URL.Path).
				Bool("session", inSession).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			AbortWithError(c, http.StatusInternalServerError, "internal server error", nil)
		}()

		c.Next()
	}
}
