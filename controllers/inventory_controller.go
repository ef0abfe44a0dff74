package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cglawson/Senior-Project-API/services"
)

// InventoryController handles elixir inventory requests
type InventoryController struct {
	InventoryService *services.InventoryService
}

// NewInventoryController creates a new InventoryController instance
func NewInventoryController(inventoryService *services.InventoryService) *InventoryController {
	return &InventoryController{InventoryService: inventoryService}
}

// HandleGetInventory returns the caller's inventory joined with catalog details
func (ic *InventoryController) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := ic.InventoryService.GetInventory(r.Context(), user.UserID)
	if err != nil {
		log.Println("Error fetching inventory:", err)
		http.Error(w, "Failed to fetch inventory", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// HandleSetActive toggles whether an owned elixir participates in boops
func (ic *InventoryController) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		ElixirID int  `json:"elixirId"`
		Active   bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if _, ok := services.LookupElixir(request.ElixirID); !ok {
		http.Error(w, "Unknown elixir", http.StatusBadRequest)
		return
	}

	if err := ic.InventoryService.SetActive(r.Context(), user.UserID, request.ElixirID, request.Active); err != nil {
		if errors.Is(err, services.ErrInventoryEntryNotFound) {
			http.Error(w, "Elixir not in inventory", http.StatusNotFound)
			return
		}
		log.Println("Error updating inventory:", err)
		http.Error(w, "Failed to update inventory", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"elixirId": request.ElixirID,
		"active":   request.Active,
	})
}

// HandleGetCatalog returns the full elixir catalog
func (ic *InventoryController) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services.ElixirCatalog())
}
