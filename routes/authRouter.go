package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/controllers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/middleware"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/session"
)

func AuthRoutes(router *gin.Engine, svc *session.Service) {
	// Public
	router.POST("/login", controller.Login())
	router.POST("/register", controller.Signup())
	router.POST("/auth/google", controller.GoogleSignIn())

	// Protected
	authGroup := router.Group("/auth")
	authGroup.Use(middleware.Authentication(svc))
	{
		authGroup.POST("/logout", controller.Logout())
		authGroup.GET("/me", controller.MyProfile())
	}
}
