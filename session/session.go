// Package session resolves the signed-in principal and its admin flag.
// The service is constructed once in main and handed to the middleware;
// nothing here reaches for globals.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/models"
)

// Principal is the identity attached to a request after token validation.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ProfileLoader fetches the user profile document for a uid.
type ProfileLoader interface {
	Load(ctx context.Context, uid string) (*models.User, error)
}

// MongoLoader reads profiles from the users collection.
type MongoLoader struct {
	Users *mongo.Collection
}

func (l MongoLoader) Load(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := l.Users.FindOne(ctx, bson.M{"user_id": uid}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type Service struct {
	loader  ProfileLoader
	timeout time.Duration
}

func NewService(loader ProfileLoader) *Service {
	return &Service{loader: loader, timeout: 10 * time.Second}
}

// Resolve fetches the profile behind uid and reports the admin flag.
// A missing document or a failed fetch resolves to isAdmin == false; it
// never blocks a request from rendering as a plain user.
func (s *Service) Resolve(ctx context.Context, uid string) (Principal, bool) {
	p := Principal{UID: uid}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.loader.Load(ctx, uid)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Warn("profile fetch failed", "uid", uid, "err", err)
		}
		return p, false
	}

	if user.Email != nil {
		p.Email = *user.Email
	}
	if user.DisplayName != nil {
		p.DisplayName = *user.DisplayName
	}
	if user.PhotoURL != nil {
		p.PhotoURL = *user.PhotoURL
	}
	return p, user.IsAdmin
}
