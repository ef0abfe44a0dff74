package routes

import (
	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up profile photo routes under /api/photos
func RegisterS3Routes(api *mux.Router, s3Service *services.S3Service, userService *services.UserService) {
	controller := controllers.NewS3Controller(s3Service, userService)

	photoRouter := api.PathPrefix("/photos").Subrouter()
	photoRouter.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("POST")
	photoRouter.HandleFunc("", controller.HandleGetPhoto).Methods("GET")
}
