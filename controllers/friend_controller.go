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

// FriendController handles friend requests and friend lists
type FriendController struct {
	FriendService *services.FriendService
}

// NewFriendController creates a new instance of FriendController
func NewFriendController(friendService *services.FriendService) *FriendController {
	return &FriendController{FriendService: friendService}
}

// SendRequest creates a pending friend request
func (c *FriendController) SendRequest(w http.ResponseWriter, r *http.Request) {
	log.Println("SendRequest called...")

	userID, guest, ok := callerIdentity(r)
	if !ok || guest {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ToUserID string `json:"toUserId"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ToUserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	req, err := c.FriendService.SendRequest(context.TODO(), userID, payload.ToUserID, payload.Message)
	if err != nil {
		if errors.Is(err, services.ErrDuplicatePending) {
			http.Error(w, "A pending request already exists", http.StatusConflict)
			return
		}
		log.Printf("Failed to send friend request: %v\n", err)
		http.Error(w, "Failed to send friend request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Request sent", "request": req})
}

// AcceptRequest accepts a pending request addressed to the caller
func (c *FriendController) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestId"]
	userID, guest, ok := callerIdentity(r)
	if !ok || guest {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	req, err := c.FriendService.Accept(context.TODO(), userID, requestID)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Request accepted", "request": req})
}

// RejectRequest rejects a pending request addressed to the caller
func (c *FriendController) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestId"]
	userID, guest, ok := callerIdentity(r)
	if !ok || guest {
		http.Error(w, "Login required", http.StatusUnauthorized)
		return
	}

	req, err := c.FriendService.Reject(context.TODO(), userID, requestID)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Request rejected", "request": req})
}

func writeRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Request not found", http.StatusNotFound)
	case errors.Is(err, services.ErrRequestNotPending):
		http.Error(w, "Request is no longer pending", http.StatusConflict)
	default:
		http.Error(w, "Failed to update request", http.StatusInternalServerError)
	}
}

// ListFriends returns a user's friend ids
func (c *FriendController) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	friends, err := c.FriendService.ListFriends(context.TODO(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch friends", http.StatusInternalServerError)
		return
	}
	writeJSON(w, friends)
}

// ListRequests returns the inbox and outbox copies after read-repair
func (c *FriendController) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	inbox, err := c.FriendService.ListInbox(context.TODO(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch requests", http.StatusInternalServerError)
		return
	}
	outbox, err := c.FriendService.ListOutbox(context.TODO(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"inbox": inbox, "outbox": outbox})
}
