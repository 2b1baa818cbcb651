package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/telemetry"
)

// PageViews emits a page_view ping for every GET navigation. The emit is
// non-blocking and the handler never waits on it.
func PageViews() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet {
			return
		}

		params := map[string]interface{}{
			"page_path":  c.Request.URL.RequestURI(),
			"status":     c.Writer.Status(),
			"request_id": c.GetString("request_id"),
		}
		if uid := c.GetString("user_id"); uid != "" {
			params["user_id"] = uid
		}
		telemetry.Emit(telemetry.EventPageView, params)
	}
}
