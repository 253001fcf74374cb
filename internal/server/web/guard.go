package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockguard/internal/session"
)

// guardPage gates protected pages on session state. It is a pure function
// of the store's state, re-evaluated on every request:
//
//   - Initializing renders a neutral loading placeholder and nothing else.
//   - Anonymous redirects to the login entry point. The originally
//     requested location is not preserved.
//   - Authenticated lets the request through unconditionally.
func (s *Server) guardPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch s.sessions.State() {
		case session.StateInitializing:
			c.HTML(http.StatusOK, "loading.tmpl", gin.H{"Title": "Loading"})
			c.Abort()
		case session.StateAnonymous:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		default:
			c.Next()
		}
	}
}

// guardAPI is the same contract for JSON and websocket clients: 503 while
// initializing, 401 when anonymous.
func (s *Server) guardAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch s.sessions.State() {
		case session.StateInitializing:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session initializing"})
		case session.StateAnonymous:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		default:
			c.Next()
		}
	}
}
