package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up routes for login and logout under /api/auth
func RegisterAuthRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewAuthController(userProfileService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")
	authRouter.HandleFunc("/logout", controller.Logout).Methods("POST")
}
