package routes

import (
	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/services"

	"github.com/gorilla/mux"
)

// RegisterFriendRoutes sets up friend graph routes under /api/friends
func RegisterFriendRoutes(api *mux.Router, friendService *services.FriendService) {
	controller := controllers.NewFriendController(friendService)

	friendRouter := api.PathPrefix("/friends").Subrouter()
	friendRouter.HandleFunc("", controller.HandleGetFriends).Methods("GET")
	friendRouter.HandleFunc("", controller.HandleAddFriend).Methods("POST")
	friendRouter.HandleFunc("", controller.HandleRemoveFriend).Methods("DELETE")
	friendRouter.HandleFunc("/pending", controller.HandleGetPending).Methods("GET")
	friendRouter.HandleFunc("/requests", controller.HandleGetRequests).Methods("GET")
}
