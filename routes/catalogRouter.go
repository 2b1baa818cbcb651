package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/controllers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/middleware"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/session"
)

// CatalogRoutes is the public browsing surface. Optional authentication
// lets telemetry name the viewer without gating anything.
func CatalogRoutes(router *gin.Engine, svc *session.Service) {
	public := router.Group("/")
	public.Use(middleware.OptionalAuthentication(svc))
	{
		public.GET("/", controller.GetAllGenres())
		public.GET("/genre/:genre_id", controller.GetGenreByID())
		public.GET("/artist/:artist_id", controller.GetArtistByID())
		public.GET("/song/:song_id", controller.GetSongByID())

		public.POST("/player/:song_id/play", controller.PlaySong())
		public.POST("/player/:song_id/pause", controller.PauseSong())
	}
}
