package helpers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	jwt "github.com/dgrijalva/jwt-go"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SignedDetails struct {
	Email       string
	DisplayName string
	Uid         string
	jwt.StandardClaims
}

var usercollection *mongo.Collection

func InitAuthHelper() {
	usercollection = database.GetCollection("users")
}

func jwtSecret() []byte {
	return []byte(os.Getenv("SECRET_KEY"))
}

// GenerateAllTokens creates access and refresh tokens for a user.
func GenerateAllTokens(email string, displayName string, uid string) (signedToken string, signedRefreshToken string, err error) {
	claims := &SignedDetails{
		Email:       email,
		DisplayName: displayName,
		Uid:         uid,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	refreshClaims := &SignedDetails{
		Uid: uid,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}

// ValidateToken verifies a token and returns its claims.
func ValidateToken(signedToken string) (claims *SignedDetails, err error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return jwtSecret(), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("the token is invalid: %v", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok {
		return nil, fmt.Errorf("the token is invalid")
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("token is expired")
	}

	return claims, nil
}

// UpdateAllTokens stores the freshly issued tokens on the user document.
func UpdateAllTokens(signedToken string, signedRefreshToken string, userId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"token":         signedToken,
		"refresh_token": signedRefreshToken,
		"updated_at":    time.Now(),
	}}

	_, err := usercollection.UpdateOne(ctx, bson.M{"user_id": userId}, update)
	if err != nil {
		log.Warn("failed to update tokens", "user_id", userId, "err", err)
	}
	return err
}
