package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cglawson/Senior-Project-API/models"
	"github.com/cglawson/Senior-Project-API/services"
)

// FriendController handles friend graph requests
type FriendController struct {
	FriendService *services.FriendService
}

// NewFriendController creates a new FriendController instance
func NewFriendController(friendService *services.FriendService) *FriendController {
	return &FriendController{FriendService: friendService}
}

// HandleAddFriend records a friend edge from the caller to another user
func (fc *FriendController) HandleAddFriend(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		FriendID string `json:"friendId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FriendID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FriendID == user.UserID {
		http.Error(w, "You cannot add yourself", http.StatusBadRequest)
		return
	}

	if err := fc.FriendService.AddFriend(r.Context(), user.UserID, request.FriendID); err != nil {
		if errors.Is(err, services.ErrFriendExists) {
			http.Error(w, "Friend already added", http.StatusConflict)
			return
		}
		if errors.Is(err, services.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Println("Error adding friend:", err)
		http.Error(w, "Failed to add friend", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Friend added"})
}

// HandleRemoveFriend removes both edges between the caller and another user
func (fc *FriendController) HandleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		FriendID string `json:"friendId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FriendID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := fc.FriendService.RemoveFriend(r.Context(), user.UserID, request.FriendID); err != nil {
		log.Println("Error removing friend:", err)
		http.Error(w, "Failed to remove friend", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Friend removed"})
}

// HandleGetFriends returns mutual friends of the caller
func (fc *FriendController) HandleGetFriends(w http.ResponseWriter, r *http.Request) {
	fc.respondWithList(w, r, fc.FriendService.GetFriends)
}

// HandleGetPending returns users the caller added who have not added them back
func (fc *FriendController) HandleGetPending(w http.ResponseWriter, r *http.Request) {
	fc.respondWithList(w, r, fc.FriendService.GetPendingRequests)
}

// HandleGetRequests returns users who added the caller and await reciprocation
func (fc *FriendController) HandleGetRequests(w http.ResponseWriter, r *http.Request) {
	fc.respondWithList(w, r, fc.FriendService.GetFriendRequests)
}

func (fc *FriendController) respondWithList(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, userID string) ([]models.FriendProfile, error),
) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profiles, err := fetch(r.Context(), user.UserID)
	if err != nil {
		log.Println("Error fetching friends:", err)
		http.Error(w, "Failed to fetch friends", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}
