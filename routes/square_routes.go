package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterSquareRoutes sets up routes for the social feed under /api/square
func RegisterSquareRoutes(r *mux.Router, squareService *services.SquareService, userProfileService *services.UserProfileService) {
	controller := controllers.NewSquareController(squareService, userProfileService)

	squareRouter := r.PathPrefix("/api/square").Subrouter()
	squareRouter.HandleFunc("/posts", controller.PublishPost).Methods("POST")
	squareRouter.HandleFunc("/discover", controller.GetDiscoverFeed).Methods("GET")
	squareRouter.HandleFunc("/following/{userId}", controller.GetFollowingFeed).Methods("GET")
	squareRouter.HandleFunc("/posts/{postId}/like", controller.LikePost).Methods("POST")
	squareRouter.HandleFunc("/posts/{postId}/like", controller.UnlikePost).Methods("DELETE")
	squareRouter.HandleFunc("/posts/{postId}/comments", controller.AddComment).Methods("POST")
	squareRouter.HandleFunc("/posts/{postId}/comments/{commentId}/pin", controller.PinComment).Methods("POST")
	squareRouter.HandleFunc("/posts/{postId}", controller.DeletePost).Methods("DELETE")
}
