package routes

import (
	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/services"

	"github.com/gorilla/mux"
)

// RegisterInventoryRoutes sets up inventory and catalog routes under /api
func RegisterInventoryRoutes(api *mux.Router, inventoryService *services.InventoryService) {
	controller := controllers.NewInventoryController(inventoryService)

	inventoryRouter := api.PathPrefix("/inventory").Subrouter()
	inventoryRouter.HandleFunc("", controller.HandleGetInventory).Methods("GET")
	inventoryRouter.HandleFunc("/active", controller.HandleSetActive).Methods("PUT")

	api.HandleFunc("/elixirs", controller.HandleGetCatalog).Methods("GET")
}
