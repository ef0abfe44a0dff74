package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cglawson/Senior-Project-API/services"
)

// LocationController handles user location requests
type LocationController struct {
	LocationService *services.LocationService
}

// NewLocationController creates a new LocationController instance
func NewLocationController(locationService *services.LocationService) *LocationController {
	return &LocationController{LocationService: locationService}
}

// HandleUpdateLocation stores the caller's latest coordinates
func (lc *LocationController) HandleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Latitude < -90 || request.Latitude > 90 || request.Longitude < -180 || request.Longitude > 180 {
		http.Error(w, "Coordinates out of range", http.StatusBadRequest)
		return
	}

	if err := lc.LocationService.UpdateLocation(r.Context(), user.UserID, request.Latitude, request.Longitude); err != nil {
		log.Println("Error updating location:", err)
		http.Error(w, "Failed to update location", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Location updated"})
}

// HandleDeleteLocation removes the caller from nearby results
func (lc *LocationController) HandleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := lc.LocationService.DeleteLocation(r.Context(), user.UserID); err != nil {
		log.Println("Error deleting location:", err)
		http.Error(w, "Failed to delete location", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Location deleted"})
}

// HandleNearbyUsers returns users ordered by distance from the caller
func (lc *LocationController) HandleNearbyUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	nearby, err := lc.LocationService.NearbyUsers(r.Context(), user.UserID, request.Latitude, request.Longitude)
	if err != nil {
		log.Println("Error fetching nearby users:", err)
		http.Error(w, "Failed to fetch nearby users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(nearby)
}
