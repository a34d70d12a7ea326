package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("/{userId}", controller.GetUserProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateUserProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}/follow/{targetId}", controller.FollowUser).Methods("POST")
	profileRouter.HandleFunc("/{userId}/follow/{targetId}", controller.UnfollowUser).Methods("DELETE")
}
