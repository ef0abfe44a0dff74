package routes

import (
	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/services"

	socketio "github.com/googollee/go-socket.io"
	"github.com/gorilla/mux"
)

// RegisterBoopRoutes sets up the boop resolution route under /api
func RegisterBoopRoutes(api *mux.Router, boopService *services.BoopService, socketServer *socketio.Server) {
	controller := controllers.NewBoopController(boopService, socketServer)

	api.HandleFunc("/boop", controller.HandleBoop).Methods("POST")
}
