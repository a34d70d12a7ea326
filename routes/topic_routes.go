package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterTopicRoutes sets up routes for topics under /api/topics
func RegisterTopicRoutes(r *mux.Router, topicService *services.TopicService) {
	controller := controllers.NewTopicController(topicService)

	topicRouter := r.PathPrefix("/api/topics").Subrouter()
	topicRouter.HandleFunc("", controller.ListTopics).Methods("GET")
	topicRouter.HandleFunc("/{name}/follow", controller.FollowTopic).Methods("POST")
	topicRouter.HandleFunc("/{name}/follow", controller.UnfollowTopic).Methods("DELETE")
}
