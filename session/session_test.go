package session

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/models"
)

type stubLoader struct {
	user *models.User
	err  error
}

func (l stubLoader) Load(context.Context, string) (*models.User, error) {
	return l.user, l.err
}

func strptr(s string) *string { return &s }

func TestResolveAdminProfile(t *testing.T) {
	svc := NewService(stubLoader{user: &models.User{
		User_id:     "u1",
		Email:       strptr("admin@example.com"),
		DisplayName: strptr("Admin"),
		PhotoURL:    strptr("https://example.com/p.png"),
		IsAdmin:     true,
	}})

	p, isAdmin := svc.Resolve(context.Background(), "u1")
	if !isAdmin {
		t.Error("isAdmin = false, want true")
	}
	if p.UID != "u1" || p.Email != "admin@example.com" || p.DisplayName != "Admin" {
		t.Errorf("unexpected principal: %+v", p)
	}
}

func TestResolveMissingProfileDefaultsToNonAdmin(t *testing.T) {
	svc := NewService(stubLoader{err: mongo.ErrNoDocuments})

	p, isAdmin := svc.Resolve(context.Background(), "ghost")
	if isAdmin {
		t.Error("isAdmin = true, want false for missing profile")
	}
	if p.UID != "ghost" {
		t.Errorf("UID = %q, want %q", p.UID, "ghost")
	}
}

func TestResolveFetchFailureDefaultsToNonAdmin(t *testing.T) {
	svc := NewService(stubLoader{err: errors.New("connection reset")})

	if _, isAdmin := svc.Resolve(context.Background(), "u1"); isAdmin {
		t.Error("isAdmin = true, want false when the fetch fails")
	}
}

func TestResolveProfileWithNilOptionals(t *testing.T) {
	svc := NewService(stubLoader{user: &models.User{User_id: "u2"}})

	p, isAdmin := svc.Resolve(context.Background(), "u2")
	if isAdmin {
		t.Error("isAdmin = true, want false by default")
	}
	if p.Email != "" || p.DisplayName != "" || p.PhotoURL != "" {
		t.Errorf("optional fields should stay empty, got %+v", p)
	}
}
