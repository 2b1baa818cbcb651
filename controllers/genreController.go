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

var genreCollection *mongo.Collection

func InitGenreController() {
	genreCollection = database.GetCollection("genres")
}

// GetAllGenres lists every genre ordered by name. This is also the home
// screen payload.
func GetAllGenres() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
		cursor, err := genreCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genres"})
			return
		}
		defer cursor.Close(ctx)

		var genres []models.Genre
		if err = cursor.All(ctx, &genres); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode genres"})
			return
		}
		if genres == nil {
			genres = []models.Genre{}
		}

		c.JSON(http.StatusOK, gin.H{"genres": genres})
	}
}

// GetGenreByID returns one genre plus the artists referencing it.
func GetGenreByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		genreID := c.Param("genre_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var genre models.Genre
		err := genreCollection.FindOne(ctx, bson.M{"genre_id": genreID}).Decode(&genre)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found", "back": "/"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genre"})
			return
		}

		cursor, err := artistCollection.Find(ctx, bson.M{"genre_id": genreID})
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

		telemetry.Emit(telemetry.EventViewGenre, map[string]interface{}{
			"genre_id": genreID,
			"user_id":  c.GetString("user_id"),
		})

		c.JSON(http.StatusOK, gin.H{"genre": genre, "artists": artists})
	}
}

// CreateGenre creates a genre from a multipart form with an optional image.
// Validation happens before any storage or database call.
func CreateGenre() gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := postForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		name, _ := formValue(form, "name")
		description, _ := formValue(form, "description")

		var genre models.Genre
		if name != "" {
			genre.Name = &name
		}
		if description != "" {
			genre.Description = &description
		}
		if err := validate.Struct(genre); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Upload first, document write second. A failed write after a
		// successful upload leaves an orphaned file; there is no
		// transaction tying the two together.
		if imageFile, imageHeader, err := c.Request.FormFile("image_file"); err == nil {
			defer imageFile.Close()
			imageURL, err := helpers.UploadFile(imageFile, imageHeader, "genres", "image")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}
			genre.ImageURL = &imageURL
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := time.Now()
		genre.ID = primitive.NewObjectID()
		genre.Genre_id = genre.ID.Hex()
		genre.Created_at = &now
		genre.Updated_at = &now

		if _, err := genreCollection.InsertOne(ctx, genre); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create genre"})
			return
		}

		telemetry.Emit(telemetry.EventCreateGenre, map[string]interface{}{
			"genre_id": genre.Genre_id,
			"user_id":  c.GetString("user_id"),
		})

		c.JSON(http.StatusCreated, gin.H{
			"message": "Genre created successfully",
			"genre":   genre,
		})
	}
}

// genreUpdateFields builds the merge-write document from the submitted
// form. Fields absent from the form stay untouched on the stored document.
func genreUpdateFields(form url.Values) bson.M {
	update := bson.M{}
	if v, ok := formValue(form, "name"); ok {
		update["name"] = v
	}
	if v, ok := formValue(form, "description"); ok {
		update["description"] = v
	}
	return update
}

// UpdateGenre merge-writes the submitted fields, uploading a replacement
// image first when one was attached.
func UpdateGenre() gin.HandlerFunc {
	return func(c *gin.Context) {
		genreID := c.Param("genre_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var existing models.Genre
		err := genreCollection.FindOne(ctx, bson.M{"genre_id": genreID}).Decode(&existing)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genre"})
			return
		}

		form, err := postForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update := genreUpdateFields(form)

		if name, ok := formValue(form, "name"); ok && name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}

		if imageFile, imageHeader, err := c.Request.FormFile("image_file"); err == nil {
			defer imageFile.Close()
			imageURL, err := helpers.UploadFile(imageFile, imageHeader, "genres", "image")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}
			update["image_url"] = imageURL
		}

		update["updated_at"] = time.Now()

		_, err = genreCollection.UpdateOne(ctx, bson.M{"genre_id": genreID}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update genre"})
			return
		}

		// The write has landed; the refetch below is only for the response
		// body, so the event goes out either way.
		telemetry.Emit(telemetry.EventUpdateGenre, map[string]interface{}{
			"genre_id": genreID,
			"user_id":  c.GetString("user_id"),
		})

		var updated models.Genre
		if err := genreCollection.FindOne(ctx, bson.M{"genre_id": genreID}).Decode(&updated); err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Genre updated successfully"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Genre updated successfully",
			"genre":   updated,
		})
	}
}

// DeleteGenre removes the genre's stored image best-effort, then the
// document. Artists referencing the genre are left as they are.
func DeleteGenre() gin.HandlerFunc {
	return func(c *gin.Context) {
		genreID := c.Param("genre_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var genre models.Genre
		err := genreCollection.FindOne(ctx, bson.M{"genre_id": genreID}).Decode(&genre)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genre"})
			return
		}

		if genre.ImageURL != nil && *genre.ImageURL != "" {
			deleteFile(*genre.ImageURL)
		}

		result, err := genreCollection.DeleteOne(ctx, bson.M{"genre_id": genreID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete genre"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
			return
		}

		telemetry.Emit(telemetry.EventDeleteGenre, map[string]interface{}{
			"genre_id": genreID,
			"user_id":  c.GetString("user_id"),
		})

		c.JSON(http.StatusOK, gin.H{"message": "Genre deleted successfully"})
	}
}
