package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Artist.Genre_id points at a Genre document. The reference is soft:
// deleting a genre does not touch its artists.
type Artist struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Artist_id   string             `bson:"artist_id" json:"artist_id,omitempty"`
	Name        *string            `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	Genre_id    *string            `bson:"genre_id" json:"genre_id" validate:"required"`
	ImageURL    *string            `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Created_at  *time.Time         `bson:"created_at" json:"created_at,omitempty"`
	Updated_at  *time.Time         `bson:"updated_at" json:"updated_at,omitempty"`
}
