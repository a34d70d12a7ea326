package controllers

import (
	"context"
	"net/http"

	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// TopicController serves the hashtag aggregation records
type TopicController struct {
	TopicService *services.TopicService
}

// NewTopicController creates a new instance of TopicController
func NewTopicController(topicService *services.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

// ListTopics returns all topics with their denormalized counters
func (c *TopicController) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := c.TopicService.ListTopics(context.TODO())
	if err != nil {
		http.Error(w, "Failed to fetch topics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, topics)
}

// FollowTopic bumps a topic's follower counter
func (c *TopicController) FollowTopic(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := c.TopicService.BumpFollowers(context.TODO(), name, 1); err != nil {
		http.Error(w, "Failed to follow topic", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Topic followed"})
}

// UnfollowTopic decrements a topic's follower counter
func (c *TopicController) UnfollowTopic(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := c.TopicService.BumpFollowers(context.TODO(), name, -1); err != nil {
		http.Error(w, "Failed to unfollow topic", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Topic unfollowed"})
}
