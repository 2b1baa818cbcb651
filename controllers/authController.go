package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/database"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/helpers"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/models"
	"github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var usercollection *mongo.Collection

func InitAuthController() {
	usercollection = database.GetCollection("users")
}

var validate = validator.New()

const tokenCookieMaxAge = 24 * 60 * 60

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
}

// HashPassword hashes a plain password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a stored hash with a provided password.
func VerifyPassword(hashedPassword string, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// Signup registers an email+password account. The response always carries
// the {success, error?} shape; failures are reported inside it rather than
// thrown at the client.
func Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var req signupRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		count, err := usercollection.CountDocuments(ctx, bson.M{"email": req.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error checking email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "email already exists"})
			return
		}

		password, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "password hashing failed"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:          primitive.NewObjectID(),
			Email:       &req.Email,
			Password:    &password,
			DisplayName: &req.DisplayName,
			IsAdmin:     false,
			Provider:    models.ProviderEmailPassword,
			Created_at:  &now,
			Updated_at:  &now,
		}
		user.User_id = user.ID.Hex()

		token, refreshToken, err := helpers.GenerateAllTokens(req.Email, req.DisplayName, user.User_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "token generation failed"})
			return
		}
		user.Token = &token
		user.Refresh_token = &refreshToken

		if _, err := usercollection.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user not created"})
			return
		}

		telemetry.Emit(telemetry.EventSignUp, map[string]interface{}{
			"method": "email_password",
			"email":  req.Email,
		})

		setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"token":         token,
			"refresh_token": refreshToken,
			"user":          user,
		})
	}
}

// Login signs in with email and password. Unlike Signup it propagates the
// underlying failure as a plain HTTP error.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var foundUser models.User
		err := usercollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&foundUser)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}

		if foundUser.Password == nil || !VerifyPassword(*foundUser.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}

		displayName := ""
		if foundUser.DisplayName != nil {
			displayName = *foundUser.DisplayName
		}

		token, refreshToken, err := helpers.GenerateAllTokens(req.Email, displayName, foundUser.User_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		if err := helpers.UpdateAllTokens(token, refreshToken, foundUser.User_id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tokens"})
			return
		}

		telemetry.Emit(telemetry.EventLogin, map[string]interface{}{
			"method": "email_password",
			"email":  req.Email,
		})

		setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"token":         token,
			"refresh_token": refreshToken,
			"user":          foundUser,
		})
	}
}

func googleOAuthConfig(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

type googleUserinfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleSignIn exchanges an OAuth authorization code, creates the profile
// document on first sign-in, and issues a session. Same {success, error?}
// shape as Signup.
func GoogleSignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var req struct {
			Code        string `json:"code" binding:"required"`
			RedirectURI string `json:"redirect_uri" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if os.Getenv("GOOGLE_CLIENT_ID") == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "google sign-in is not configured"})
			return
		}

		conf := googleOAuthConfig(req.RedirectURI)
		tok, err := conf.Exchange(ctx, req.Code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			return
		}

		resp, err := conf.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
			return
		}
		defer resp.Body.Close()

		var info googleUserinfo
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		err = usercollection.FindOne(ctx, bson.M{"email": info.Email}).Decode(&user)
		isNewUser := err == mongo.ErrNoDocuments
		if err != nil && !isNewUser {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error fetching user"})
			return
		}

		if isNewUser {
			now := time.Now()
			user = models.User{
				ID:          primitive.NewObjectID(),
				Email:       &info.Email,
				DisplayName: &info.Name,
				PhotoURL:    &info.Picture,
				IsAdmin:     false,
				Provider:    models.ProviderGoogle,
				Created_at:  &now,
				Updated_at:  &now,
			}
			user.User_id = user.ID.Hex()

			if _, err := usercollection.InsertOne(ctx, user); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user not created"})
				return
			}

			telemetry.Emit(telemetry.EventSignUp, map[string]interface{}{
				"method": "google",
				"email":  info.Email,
			})
		}

		token, refreshToken, err := helpers.GenerateAllTokens(info.Email, info.Name, user.User_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "token generation failed"})
			return
		}

		if err := helpers.UpdateAllTokens(token, refreshToken, user.User_id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update tokens"})
			return
		}

		telemetry.Emit(telemetry.EventLogin, map[string]interface{}{
			"method":      "google",
			"email":       info.Email,
			"is_new_user": isNewUser,
		})

		setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"token":         token,
			"refresh_token": refreshToken,
			"user":          user,
		})
	}
}

// Logout clears the stored tokens and the session cookie. Propagates
// failure instead of wrapping it.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		userId := c.GetString("user_id")
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		update := bson.M{"$set": bson.M{
			"token":         "",
			"refresh_token": "",
			"updated_at":    time.Now(),
		}}
		if _, err := usercollection.UpdateOne(ctx, bson.M{"user_id": userId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error logging out"})
			return
		}

		telemetry.Emit(telemetry.EventLogout, map[string]interface{}{"user_id": userId})

		clearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
	}
}

// MyProfile returns the signed-in visitor's profile and admin flag.
func MyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		userId := c.GetString("user_id")
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var user models.User
		err := usercollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&user)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching user"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "is_admin": user.IsAdmin})
	}
}
