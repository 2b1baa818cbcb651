package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Song struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Song_id   string             `bson:"song_id" json:"song_id,omitempty"`
	Title     *string            `bson:"title" json:"title" validate:"required,min=1,max=200"`
	Artist_id *string            `bson:"artist_id" json:"artist_id" validate:"required"`
	// Duration is in seconds, derived from the uploaded audio file. Never
	// taken from the client.
	Duration   int        `bson:"duration" json:"duration"`
	AudioURL   *string    `bson:"audio_url,omitempty" json:"audio_url,omitempty"`
	CoverURL   *string    `bson:"cover_url,omitempty" json:"cover_url,omitempty"`
	Genre_id   *string    `bson:"genre_id,omitempty" json:"genre_id,omitempty"`
	Created_at *time.Time `bson:"created_at" json:"created_at,omitempty"`
	Updated_at *time.Time `bson:"updated_at" json:"updated_at,omitempty"`
}
