package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Genre struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Genre_id    string             `bson:"genre_id" json:"genre_id,omitempty"`
	Name        *string            `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    *string            `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Created_at  *time.Time         `bson:"created_at" json:"created_at,omitempty"`
	Updated_at  *time.Time         `bson:"updated_at" json:"updated_at,omitempty"`
}
