package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// GetUserProfile handles fetching a user profile by ID
func (c *UserProfileController) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := c.UserProfileService.GetUser(context.TODO(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, user)
}

// UpdateUserProfile handles profile edits, including nickname validation
func (c *UserProfileController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := c.UserProfileService.UpdateProfile(context.TODO(), userID, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNicknameRequired), errors.Is(err, services.ErrNicknameTaken):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Profile not found", http.StatusNotFound)
		default:
			log.Printf("Failed to update profile: %v\n", err)
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": user,
	})
}

// FollowUser adds targetId to the caller's following list
func (c *UserProfileController) FollowUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	targetID := mux.Vars(r)["targetId"]

	user, err := c.UserProfileService.Follow(context.TODO(), userID, targetID)
	if err != nil {
		http.Error(w, "Failed to follow user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Now following", "profile": user})
}

// UnfollowUser removes targetId from the caller's following list
func (c *UserProfileController) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	targetID := mux.Vars(r)["targetId"]

	user, err := c.UserProfileService.Unfollow(context.TODO(), userID, targetID)
	if err != nil {
		http.Error(w, "Failed to unfollow user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Unfollowed", "profile": user})
}
