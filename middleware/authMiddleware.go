package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/helpers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/session"
)

// The token rides either the Authorization header (API clients) or the
// token cookie set at login (the browser).
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie
}

// Authentication guards routes that require a signed-in visitor.
// Unauthenticated navigations are redirected to /login with the requested
// location preserved.
func Authentication(svc *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			// RequestURI keeps the query string so ?page= style state
			// survives the round trip through /login.
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		principal, isAdmin := svc.Resolve(c.Request.Context(), claims.Uid)
		c.Set("user_id", principal.UID)
		c.Set("email", principal.Email)
		c.Set("display_name", principal.DisplayName)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

// AdminOnly sits behind Authentication and bounces non-admin visitors back
// to the home screen.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Decide(true, c.GetBool("is_admin"), true) {
		case RedirectHome:
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		default:
			c.Next()
		}
	}
}

// OptionalAuthentication attaches the principal when a valid token is
// present but lets anonymous visitors through. Public screens use it so
// telemetry can name the viewer.
func OptionalAuthentication(svc *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err == nil {
			principal, isAdmin := svc.Resolve(c.Request.Context(), claims.Uid)
			c.Set("user_id", principal.UID)
			c.Set("is_admin", isAdmin)
		}
		c.Next()
	}
}
