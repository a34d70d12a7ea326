package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trueshot_server/models"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// SquareController handles the social feed
type SquareController struct {
	SquareService      *services.SquareService
	UserProfileService *services.UserProfileService
}

// NewSquareController creates a new instance of SquareController
func NewSquareController(squareService *services.SquareService, userProfileService *services.UserProfileService) *SquareController {
	return &SquareController{SquareService: squareService, UserProfileService: userProfileService}
}

// PublishPost publishes a verification or outfit-swap artifact to the square
func (c *SquareController) PublishPost(w http.ResponseWriter, r *http.Request) {
	log.Println("PublishPost called...")

	var post models.SquarePost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if post.UserID == "" || post.ImageURL == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if post.Kind != models.PostKindVerification && post.Kind != models.PostKindOutfitSwap {
		http.Error(w, "Unknown post kind", http.StatusBadRequest)
		return
	}

	created, err := c.SquareService.Publish(context.TODO(), post)
	if err != nil {
		log.Printf("Failed to publish post: %v\n", err)
		http.Error(w, "Failed to publish post", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Post published", "post": created})
}

// GetDiscoverFeed returns all posts ordered by blended popularity/recency
func (c *SquareController) GetDiscoverFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := c.SquareService.GetDiscoverFeed(context.TODO())
	if err != nil {
		http.Error(w, "Failed to fetch feed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, posts)
}

// GetFollowingFeed returns followed users' posts, newest first
func (c *SquareController) GetFollowingFeed(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := c.UserProfileService.GetUser(context.TODO(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch feed", http.StatusInternalServerError)
		return
	}

	posts, err := c.SquareService.GetFollowingFeed(context.TODO(), user.Following)
	if err != nil {
		http.Error(w, "Failed to fetch feed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, posts)
}

// LikePost records the caller's like
func (c *SquareController) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	userID, _, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	post, err := c.SquareService.Like(context.TODO(), postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to like post", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Liked", "post": post})
}

// UnlikePost removes the caller's like
func (c *SquareController) UnlikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	userID, _, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	post, err := c.SquareService.Unlike(context.TODO(), postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to unlike post", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Unliked", "post": post})
}

// AddComment appends a comment to a post
func (c *SquareController) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	userID, _, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Content == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	comment, err := c.SquareService.AddComment(context.TODO(), postID, userID, payload.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to add comment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Comment added", "comment": comment})
}

// PinComment pins one of the owner's post's comments
func (c *SquareController) PinComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	commentID := mux.Vars(r)["commentId"]
	userID, _, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	post, err := c.SquareService.PinComment(context.TODO(), postID, userID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotOwner):
			http.Error(w, "Only the post owner can pin comments", http.StatusForbidden)
		case errors.Is(err, services.ErrCommentNotFound):
			http.Error(w, "Comment does not belong to this post", http.StatusBadRequest)
		default:
			http.Error(w, "Failed to pin comment", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Comment pinned", "post": post})
}

// DeletePost removes the owner's post
func (c *SquareController) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	userID, _, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	if err := c.SquareService.DeletePost(context.TODO(), postID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotOwner):
			http.Error(w, "Only the post owner can delete it", http.StatusForbidden)
		default:
			http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Post deleted"})
}
