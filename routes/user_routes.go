package routes

import (
	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up registration, key rotation, and profile routes
func RegisterUserRoutes(r *mux.Router, api *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	// Registration and key rotation run before the caller has a key
	r.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	r.HandleFunc("/apikey/rotate", controller.HandleRotateAPIKey).Methods("POST")

	userRouter := api.PathPrefix("/user").Subrouter()
	userRouter.HandleFunc("/me", controller.HandleGetMe).Methods("GET")
	userRouter.HandleFunc("/username", controller.HandleUpdateUsername).Methods("PUT")

	api.HandleFunc("/history/since", controller.HandleHistorySince).Methods("GET")
}
