package controllers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/database"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/helpers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/models"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var artistCollection *mongo.Collection

func InitArtistController() {
	artistCollection = database.GetCollection("artists")
}

// GetAllArtists lists every artist ordered by name.
func GetAllArtists() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
		cursor, err := artistCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artists"})
			return
		}
		defer cursor.Close(ctx)

		var artists []models.Artist
		if err = cursor.All(ctx, &artists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode artists"})
			return
		}
		if artists == nil {
			artists = []models.Artist{}
		}

		c.JSON(http.StatusOK, gin.H{"artists": artists})
	}
}

// GetArtistByID returns one artist plus its songs ordered by title.
func GetArtistByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artist_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var artist models.Artist
		err := artistCollection.FindOne(ctx, bson.M{"artist_id": artistID}).Decode(&artist)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found", "back": "/"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artist"})
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
		cursor, err := songCollection.Find(ctx, bson.M{"artist_id": artistID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch songs"})
			return
		}
		defer cursor.Close(ctx)

		var songs []models.Song
		if err = cursor.All(ctx, &songs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode songs"})
			return
		}
		if songs == nil {
			songs = []models.Song{}
		}

		telemetry.Emit(telemetry.EventViewArtist, map[string]interface{}{
			"artist_id": artistID,
			"user_id":   c.GetString("user_id"),
		})

		c.JSON(http.StatusOK, gin.H{"artist": artist, "songs": songs})
	}
}

// CreateArtist creates an artist (admin only). Name and genre are required
// and rejected before any storage or database call.
func CreateArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := postForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		name, _ := formValue(form, "name")
		description, _ := formValue(form, "description")
		genreID, _ := formValue(form, "genre_id")

		var artist models.Artist
		if name != "" {
			artist.Name = &name
		}
		if genreID != "" {
			artist.Genre_id = &genreID
		}
		if description != "" {
			artist.Description = &description
		}
		if err := validate.Struct(artist); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if imageFile, imageHeader, err := c.Request.FormFile("image_file"); err == nil {
			defer imageFile.Close()
			imageURL, err := helpers.UploadFile(imageFile, imageHeader, "artists", "image")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}
			artist.ImageURL = &imageURL
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := time.Now()
		artist.ID = primitive.NewObjectID()
		artist.Artist_id = artist.ID.Hex()
		artist.Created_at = &now
		artist.Updated_at = &now

		if _, err := artistCollection.InsertOne(ctx, artist); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artist"})
			return
		}

		telemetry.Emit(telemetry.EventCreateArtist, map[string]interface{}{
			"artist_id": artist.Artist_id,
			"user_id":   c.GetString("user_id"),
		})

		c.JSON(http.StatusCreated, gin.H{
			"message": "Artist created successfully",
			"artist":  artist,
		})
	}
}

// artistUpdateFields builds the merge-write document from the submitted
// form.
func artistUpdateFields(form url.Values) bson.M {
	update := bson.M{}
	if v, ok := formValue(form, "name"); ok {
		update["name"] = v
	}
	if v, ok := formValue(form, "description"); ok {
		update["description"] = v
	}
	if v, ok := formValue(form, "genre_id"); ok {
		update["genre_id"] = v
	}
	return update
}

// UpdateArtist merge-writes the submitted fields (admin only).
func UpdateArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artist_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var existing models.Artist
		err := artistCollection.FindOne(ctx, bson.M{"artist_id": artistID}).Decode(&existing)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artist"})
			return
		}

		form, err := postForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update := artistUpdateFields(form)

		if name, ok := formValue(form, "name"); ok && name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		if genreID, ok := formValue(form, "genre_id"); ok && genreID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre_id cannot be empty"})
			return
		}

		if imageFile, imageHeader, err := c.Request.FormFile("image_file"); err == nil {
			defer imageFile.Close()
			imageURL, err := helpers.UploadFile(imageFile, imageHeader, "artists", "image")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}
			update["image_url"] = imageURL
		}

		update["updated_at"] = time.Now()

		_, err = artistCollection.UpdateOne(ctx, bson.M{"artist_id": artistID}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artist"})
			return
		}

		telemetry.Emit(telemetry.EventUpdateArtist, map[string]interface{}{
			"artist_id": artistID,
			"user_id":   c.GetString("user_id"),
		})

		var updated models.Artist
		if err := artistCollection.FindOne(ctx, bson.M{"artist_id": artistID}).Decode(&updated); err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Artist updated successfully"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Artist updated successfully",
			"artist":  updated,
		})
	}
}

// DeleteArtist removes the artist's stored image best-effort, then the
// document. Songs referencing the artist are left dangling.
func DeleteArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artist_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var artist models.Artist
		err := artistCollection.FindOne(ctx, bson.M{"artist_id": artistID}).Decode(&artist)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artist"})
			return
		}

		if artist.ImageURL != nil && *artist.ImageURL != "" {
			deleteFile(*artist.ImageURL)
		}

		result, err := artistCollection.DeleteOne(ctx, bson.M{"artist_id": artistID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artist"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
			return
		}

		telemetry.Emit(telemetry.EventDeleteArtist, map[string]interface{}{
			"artist_id": artistID,
			"user_id":   c.GetString("user_id"),
		})

		c.JSON(http.StatusOK, gin.H{"message": "Artist deleted successfully"})
	}
}
