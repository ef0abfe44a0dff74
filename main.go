package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/cglawson/Senior-Project-API/controllers"
	"github.com/cglawson/Senior-Project-API/routes"
	"github.com/cglawson/Senior-Project-API/services"
	"github.com/cglawson/Senior-Project-API/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userService := &services.UserService{Dynamo: dynamoService}
	inventoryService := &services.InventoryService{Dynamo: dynamoService}
	friendService := &services.FriendService{Dynamo: dynamoService, Users: userService}
	locationService := &services.LocationService{Dynamo: dynamoService, Users: userService}
	s3Service := services.InitializeS3Service()

	rng := services.NewLockedRand(time.Now().UnixNano())
	rewardService := &services.RewardService{Rand: rng}
	boopStore := &services.DynamoBoopStore{Dynamo: dynamoService, Inventory: inventoryService}
	boopService := services.NewBoopService(boopStore, rewardService, rng)

	// Initialize the Socket.IO server for boop notifications
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Println("Socket.IO server error:", err)
		}
	}()
	defer socketServer.Close()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Boop")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	// Authenticated routes live under /api
	api := r.PathPrefix("/api").Subrouter()
	api.Use(controllers.APIKeyMiddleware(userService))

	// Register routes
	routes.RegisterUserRoutes(r, api, userService)
	routes.RegisterBoopRoutes(api, boopService, socketServer)
	routes.RegisterFriendRoutes(api, friendService)
	routes.RegisterInventoryRoutes(api, inventoryService)
	routes.RegisterLocationRoutes(api, locationService)
	routes.RegisterS3Routes(api, s3Service, userService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
