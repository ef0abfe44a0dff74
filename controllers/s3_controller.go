package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cglawson/Senior-Project-API/services"
)

// S3Controller handles profile photo upload and retrieval
type S3Controller struct {
	S3Service   *services.S3Service
	UserService *services.UserService
}

// NewS3Controller creates a new S3Controller instance
func NewS3Controller(s3Service *services.S3Service, userService *services.UserService) *S3Controller {
	return &S3Controller{S3Service: s3Service, UserService: userService}
}

// HandleUploadURL issues a presigned PUT URL and records the resulting
// object key on the caller's profile.
func (sc *S3Controller) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FileName == "" || request.FileType == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	uploadURL, key, err := sc.S3Service.GenerateUploadURL(request.FileName, request.FileType)
	if err != nil {
		log.Println("Error generating upload URL:", err)
		http.Error(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}

	if err := sc.UserService.SetPhotoKey(r.Context(), user.UserID, key); err != nil {
		log.Println("Error saving photo key:", err)
		http.Error(w, "Failed to save photo key", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"uploadUrl": uploadURL,
		"photoKey":  key,
	})
}

// HandleGetPhoto returns a presigned read URL for a user's profile photo
func (sc *S3Controller) HandleGetPhoto(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		caller, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID = caller.UserID
	}

	target, err := sc.UserService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Println("Error fetching user:", err)
		http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}
	if target.PhotoKey == "" {
		http.Error(w, "No photo uploaded", http.StatusNotFound)
		return
	}

	readURL, err := sc.S3Service.GenerateReadURL(target.PhotoKey)
	if err != nil {
		log.Println("Error generating read URL:", err)
		http.Error(w, "Failed to generate read URL", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"photoUrl": readURL})
}
