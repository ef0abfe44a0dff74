package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cglawson/Senior-Project-API/services"
	"github.com/cglawson/Senior-Project-API/socket"

	socketio "github.com/googollee/go-socket.io"
)

// BoopController handles boop resolution requests
type BoopController struct {
	BoopService *services.BoopService
	Socket      *socketio.Server
}

// NewBoopController creates a new BoopController instance
func NewBoopController(boopService *services.BoopService, socketServer *socketio.Server) *BoopController {
	return &BoopController{BoopService: boopService, Socket: socketServer}
}

// HandleBoop resolves one boop from the caller to the target
func (bc *BoopController) HandleBoop(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		TargetUserID string `json:"targetUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.TargetUserID == "" {
		http.Error(w, "targetUserId is required", http.StatusBadRequest)
		return
	}

	result, err := bc.BoopService.ResolveBoop(r.Context(), user.UserID, request.TargetUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfBoop):
			http.Error(w, "You cannot boop yourself", http.StatusBadRequest)
		case errors.Is(err, services.ErrCooldownActive):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(result)
		default:
			log.Println("Error resolving boop:", err)
			http.Error(w, "Boop failed", http.StatusInternalServerError)
		}
		return
	}

	if bc.Socket != nil {
		socket.NotifyBoop(bc.Socket, request.TargetUserID, socket.BoopNotification{
			FromUserID: user.UserID,
			Value:      result.TargetValue,
			Timestamp:  result.Timestamp,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
