package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterFriendRoutes sets up routes for friend requests under /api/friends
func RegisterFriendRoutes(r *mux.Router, friendService *services.FriendService) {
	controller := controllers.NewFriendController(friendService)

	friendRouter := r.PathPrefix("/api/friends").Subrouter()
	friendRouter.HandleFunc("/requests", controller.SendRequest).Methods("POST")
	friendRouter.HandleFunc("/requests/{requestId}/accept", controller.AcceptRequest).Methods("POST")
	friendRouter.HandleFunc("/requests/{requestId}/reject", controller.RejectRequest).Methods("POST")
	friendRouter.HandleFunc("/{userId}", controller.ListFriends).Methods("GET")
	friendRouter.HandleFunc("/{userId}/requests", controller.ListRequests).Methods("GET")
}
