package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/controllers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/middleware"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/session"
)

// AdminRoutes guards the whole administration surface: visitors without a
// session land on /login, signed-in non-admins land on /.
func AdminRoutes(router *gin.Engine, svc *session.Service) {
	admin := router.Group("/admin")
	admin.Use(middleware.Authentication(svc), middleware.AdminOnly())
	{
		admin.GET("", controller.AdminDashboard())

		admin.GET("/genres", controller.GetAllGenres())
		admin.POST("/genres", controller.CreateGenre())
		admin.PUT("/genres/:genre_id", controller.UpdateGenre())
		admin.DELETE("/genres/:genre_id", controller.DeleteGenre())

		admin.GET("/artists", controller.GetAllArtists())
		admin.POST("/artists", controller.CreateArtist())
		admin.PUT("/artists/:artist_id", controller.UpdateArtist())
		admin.DELETE("/artists/:artist_id", controller.DeleteArtist())

		admin.GET("/songs", controller.GetAllSongs())
		admin.POST("/songs", controller.CreateSong())
		admin.PUT("/songs/:song_id", controller.UpdateSong())
		admin.DELETE("/songs/:song_id", controller.DeleteSong())
	}
}
