package routes

import (
	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/services"

	"github.com/gorilla/mux"
)

// RegisterLocationRoutes sets up location routes under /api/location
func RegisterLocationRoutes(api *mux.Router, locationService *services.LocationService) {
	controller := controllers.NewLocationController(locationService)

	locationRouter := api.PathPrefix("/location").Subrouter()
	locationRouter.HandleFunc("", controller.HandleUpdateLocation).Methods("PUT")
	locationRouter.HandleFunc("", controller.HandleDeleteLocation).Methods("DELETE")
	locationRouter.HandleFunc("/nearby", controller.HandleNearbyUsers).Methods("POST")
}
