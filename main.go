package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/controllers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/database"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/helpers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/middleware"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/routes"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/session"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/telemetry"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("no .env file, using process environment")
	}

	if os.Getenv("SECRET_KEY") == "" {
		log.Fatal("SECRET_KEY not set")
	}

	database.InitDB()

	helpers.InitAuthHelper()
	controllers.InitAuthController()
	controllers.InitGenreController()
	controllers.InitArtistController()
	controllers.InitSongController()

	// Telemetry is optional: without a NATS_URL events are skipped, not
	// queued.
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		pub, err := telemetry.NewNATSPublisher(natsURL)
		if err != nil {
			log.Warn("telemetry disabled", "err", err)
		} else {
			telemetry.Init(pub, 256)
			log.Info("telemetry enabled", "url", natsURL)
		}
	}

	svc := session.NewService(session.MongoLoader{Users: database.GetCollection("users")})

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.PageViews())

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(router, svc)
	routes.CatalogRoutes(router, svc)
	routes.AdminRoutes(router, svc)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found", "back": "/"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("server shutdown", "err", err)
	}
	telemetry.Shutdown()
	database.Disconnect(ctx)
}
