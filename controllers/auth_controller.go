package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"trueshot_server/services"
)

// AuthController handles login and logout
type AuthController struct {
	UserProfileService *services.UserProfileService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(userProfileService *services.UserProfileService) *AuthController {
	return &AuthController{UserProfileService: userProfileService}
}

// Login resolves or creates the account for an identity and issues a session token
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Println("Login called...")

	var input services.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Failed to decode request body: %v\n", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, created, err := c.UserProfileService.Login(context.TODO(), input)
	if err != nil {
		log.Printf("Login failed: %v\n", err)
		http.Error(w, "Login failed", http.StatusBadRequest)
		return
	}

	token, err := services.GenerateSessionToken(user.UserID, []byte(os.Getenv("JWT_SECRET")), 30*24*time.Hour)
	if err != nil {
		log.Printf("Failed to issue session token: %v\n", err)
		http.Error(w, "Failed to issue session token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
		"token":   token,
		"created": created,
	})
}

// Logout clears the caller's session pointer
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	userID, guest, ok := callerIdentity(r)
	if !ok || guest {
		http.Error(w, "Not logged in", http.StatusUnauthorized)
		return
	}

	if err := c.UserProfileService.Logout(context.TODO(), userID); err != nil {
		log.Printf("Logout failed: %v\n", err)
		http.Error(w, "Logout failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Logged out"})
}
