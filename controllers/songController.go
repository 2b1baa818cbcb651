package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
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

var songCollection *mongo.Collection

func InitSongController() {
	songCollection = database.GetCollection("songs")
}

func isAudioUpload(contentType string, filename string) bool {
	if strings.HasPrefix(contentType, "audio/") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".mp3")
}

// GetAllSongs lists every song ordered by title (admin listing).
func GetAllSongs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
		cursor, err := songCollection.Find(ctx, bson.M{}, opts)
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

		c.JSON(http.StatusOK, gin.H{"songs": songs})
	}
}

// GetSongByID returns a single song.
func GetSongByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		songID := c.Param("song_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var song models.Song
		err := songCollection.FindOne(ctx, bson.M{"song_id": songID}).Decode(&song)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Song not found", "back": "/"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch song"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"song": song})
	}
}

// CreateSong uploads a song (admin only). The audio file is mandatory and
// its decoded playback length becomes the duration; the client cannot set
// one. Field validation happens before any upload or database call.
func CreateSong() gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := postForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		title, _ := formValue(form, "title")
		artistID, _ := formValue(form, "artist_id")
		genreID, _ := formValue(form, "genre_id")

		var song models.Song
		if title != "" {
			song.Title = &title
		}
		if artistID != "" {
			song.Artist_id = &artistID
		}
		if genreID != "" {
			song.Genre_id = &genreID
		}
		if err := validate.Struct(song); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		audioFile, audioHeader, err := c.Request.FormFile("audio_file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
			return
		}
		defer audioFile.Close()

		if !isAudioUpload(audioHeader.Header.Get("Content-Type"), audioHeader.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a valid audio file"})
			return
		}

		duration, err := helpers.AudioDuration(audioFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio duration"})
			return
		}
		song.Duration = duration

		audioURL, err := helpers.UploadFile(audioFile, audioHeader, "songs/audio", "video")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload audio"})
			return
		}
		song.AudioURL = &audioURL

		if coverFile, coverHeader, err := c.Request.FormFile("cover_file"); err == nil {
			defer coverFile.Close()
			coverURL, err := helpers.UploadFile(coverFile, coverHeader, "songs/covers", "image")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload cover"})
				return
			}
			song.CoverURL = &coverURL
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := time.Now()
		song.ID = primitive.NewObjectID()
		song.Song_id = song.ID.Hex()
		song.Created_at = &now
		song.Updated_at = &now

		if _, err := songCollection.InsertOne(ctx, song); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save song"})
			return
		}

		telemetry.Emit(telemetry.EventCreateSong, map[string]interface{}{
			"song_id": song.Song_id,
			"user_id": c.GetString("user_id"),
		})

		c.JSON(http.StatusCreated, gin.H{
			"message": "Song created successfully",
			"song":    song,
		})
	}
}

// songUpdateFields builds the merge-write document from the submitted form.
func songUpdateFields(form url.Values) bson.M {
	update := bson.M{}
	if v, ok := formValue(form, "title"); ok {
		update["title"] = v
	}
	if v, ok := formValue(form, "artist_id"); ok {
		update["artist_id"] = v
	}
	if v, ok := formValue(form, "genre_id"); ok {
		update["genre_id"] = v
	}
	return update
}

// UpdateSong merge-writes the submitted fields (admin only). A replacement
// audio file recomputes the duration before anything is written.
func UpdateSong() gin.HandlerFunc {
	return func(c *gin.Context) {
		songID := c.Param("song_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var existing models.Song
		err := songCollection.FindOne(ctx, bson.M{"song_id": songID}).Decode(&existing)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch song"})
			return
		}

		form, err := postForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update := songUpdateFields(form)

		if title, ok := formValue(form, "title"); ok && title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		if artistID, ok := formValue(form, "artist_id"); ok && artistID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "artist_id cannot be empty"})
			return
		}

		if audioFile, audioHeader, err := c.Request.FormFile("audio_file"); err == nil {
			defer audioFile.Close()

			if !isAudioUpload(audioHeader.Header.Get("Content-Type"), audioHeader.Filename) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a valid audio file"})
				return
			}

			duration, err := helpers.AudioDuration(audioFile)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio duration"})
				return
			}

			audioURL, err := helpers.UploadFile(audioFile, audioHeader, "songs/audio", "video")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload audio"})
				return
			}
			update["audio_url"] = audioURL
			update["duration"] = duration
		}

		if coverFile, coverHeader, err := c.Request.FormFile("cover_file"); err == nil {
			defer coverFile.Close()
			coverURL, err := helpers.UploadFile(coverFile, coverHeader, "songs/covers", "image")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload cover"})
				return
			}
			update["cover_url"] = coverURL
		}

		update["updated_at"] = time.Now()

		_, err = songCollection.UpdateOne(ctx, bson.M{"song_id": songID}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update song"})
			return
		}

		telemetry.Emit(telemetry.EventUpdateSong, map[string]interface{}{
			"song_id": songID,
			"user_id": c.GetString("user_id"),
		})

		var updated models.Song
		if err := songCollection.FindOne(ctx, bson.M{"song_id": songID}).Decode(&updated); err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Song updated successfully"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Song updated successfully",
			"song":    updated,
		})
	}
}

// DeleteSong removes the stored audio and cover best-effort, then the
// document.
func DeleteSong() gin.HandlerFunc {
	return func(c *gin.Context) {
		songID := c.Param("song_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var song models.Song
		err := songCollection.FindOne(ctx, bson.M{"song_id": songID}).Decode(&song)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch song"})
			return
		}

		if song.AudioURL != nil && *song.AudioURL != "" {
			deleteFile(*song.AudioURL)
		}
		if song.CoverURL != nil && *song.CoverURL != "" {
			deleteFile(*song.CoverURL)
		}

		result, err := songCollection.DeleteOne(ctx, bson.M{"song_id": songID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete song"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
			return
		}

		telemetry.Emit(telemetry.EventDeleteSong, map[string]interface{}{
			"song_id": songID,
			"user_id": c.GetString("user_id"),
		})

		c.JSON(http.StatusOK, gin.H{"message": "Song deleted successfully"})
	}
}

// PlaySong and PauseSong are telemetry pings from the audio player. They
// do not touch the database.
func PlaySong() gin.HandlerFunc {
	return func(c *gin.Context) {
		telemetry.Emit(telemetry.EventPlaySong, map[string]interface{}{
			"song_id": c.Param("song_id"),
			"user_id": c.GetString("user_id"),
		})
		c.Status(http.StatusNoContent)
	}
}

func PauseSong() gin.HandlerFunc {
	return func(c *gin.Context) {
		telemetry.Emit(telemetry.EventPauseSong, map[string]interface{}{
			"song_id": c.Param("song_id"),
			"user_id": c.GetString("user_id"),
		})
		c.Status(http.StatusNoContent)
	}
}
