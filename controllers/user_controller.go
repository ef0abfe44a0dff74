package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cglawson/Senior-Project-API/services"
)

// UserController handles registration, API keys and account settings
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new UserController instance
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// HandleRegister creates a new account and returns its API key
func (uc *UserController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
		DeviceID string `json:"deviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Username == "" || request.DeviceID == "" {
		http.Error(w, "username and deviceId are required", http.StatusBadRequest)
		return
	}

	user, err := uc.UserService.CreateUser(r.Context(), request.Username, request.DeviceID)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			http.Error(w, "Sorry, that username is taken", http.StatusConflict)
			return
		}
		log.Println("Error registering user:", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"userId": user.UserID,
		"apiKey": user.APIKey,
	})
}

// HandleRotateAPIKey issues a fresh API key for a username/device pair
func (uc *UserController) HandleRotateAPIKey(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
		DeviceID string `json:"deviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	apiKey, err := uc.UserService.RotateAPIKey(r.Context(), request.Username, request.DeviceID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserNotFound) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Println("Error rotating API key:", err)
		http.Error(w, "Failed to rotate API key", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"apiKey": apiKey})
}

// HandleGetMe returns the caller's own account
func (uc *UserController) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// HandleUpdateUsername renames the caller, limited to once every 14 days
func (uc *UserController) HandleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		Username string `json:"username"`
		DeviceID string `json:"deviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	updated, daysRemaining, err := uc.UserService.UpdateUsername(r.Context(), user.UserID, request.Username, request.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameCooldown):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":         "username was changed too recently",
				"daysRemaining": daysRemaining,
			})
		case errors.Is(err, services.ErrUsernameTaken):
			http.Error(w, "Sorry, that username is taken", http.StatusConflict)
		case errors.Is(err, services.ErrInvalidCredentials):
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			log.Println("Error updating username:", err)
			http.Error(w, "Failed to update username", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// HandleHistorySince returns everything that happened to the caller since
// they last checked, then bumps the marker
func (uc *UserController) HandleHistorySince(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := uc.UserService.SinceLastChecked(r.Context(), user.UserID)
	if err != nil {
		log.Println("Error building history view:", err)
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
