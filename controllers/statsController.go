package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go.mongodb.org/mongo-driver/bson"
)

// AdminDashboard backs the admin landing screen with per-collection
// document counts.
func AdminDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		genreCount, err := genreCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count genres"})
			return
		}

		artistCount, err := artistCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count artists"})
			return
		}

		songCount, err := songCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count songs"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"genres":  genreCount,
			"artists": artistCount,
			"songs":   songCount,
		})
	}
}
