package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthProvider string

const (
	ProviderEmailPassword AuthProvider = "email_password"
	ProviderGoogle        AuthProvider = "google"
)

// User is the profile document behind every signed-in visitor. IsAdmin is
// the sole authorization signal for the admin surface; there is no endpoint
// to set it, promotion happens directly in the database.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User_id       string             `bson:"user_id" json:"user_id,omitempty"`
	Email         *string            `bson:"email" json:"email" validate:"required,email"`
	Password      *string            `bson:"password,omitempty" json:"-" validate:"omitempty,min=6"`
	DisplayName   *string            `bson:"display_name,omitempty" json:"display_name,omitempty"`
	PhotoURL      *string            `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	IsAdmin       bool               `bson:"is_admin" json:"is_admin"`
	Provider      AuthProvider       `bson:"provider,omitempty" json:"provider,omitempty"`
	Token         *string            `bson:"token,omitempty" json:"-"`
	Refresh_token *string            `bson:"refresh_token,omitempty" json:"-"`
	Created_at    *time.Time         `bson:"created_at" json:"created_at,omitempty"`
	Updated_at    *time.Time         `bson:"updated_at" json:"updated_at,omitempty"`
}
