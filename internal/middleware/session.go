package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/viewctl"
)

const (
	// SessionCookie names the cookie that carries the session id.
	SessionCookie = "coinpulse_session"
	// SessionKey is the gin context key of the session's *viewctl.Controller.
	SessionKey = "session"
)

// Session is a Gin middleware that attaches the caller's view controller to
// the request context.
//
// Behavior:
//   - Reads the session id from the "coinpulse_session" cookie.
//   - Unknown or missing ids start a new session; the cookie is (re)issued.
//   - Stores the *viewctl.Controller under SessionKey.
//
// Usage:
//
//	pages := router.Group("/", middleware.Session(store, 30*time.Minute))
func Session(store *viewctl.Store, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		incoming, _ := c.Cookie(SessionCookie)
		id, ctrl := store.Acquire(incoming)
		if id != incoming {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   maxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(SessionKey, ctrl)
		c.Next()
	}
}

// Controller returns the session controller attached by Session.
func Controller(c *gin.Context) (*viewctl.Controller, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	ctrl, ok := v.(*viewctl.Controller)
	return ctrl, ok
}
