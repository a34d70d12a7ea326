package main

import (
	"log"
	"net/http"
	"os"

	"trueshot_server/routes"
	"trueshot_server/services"
	"trueshot_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and the key-value store
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	kv := services.NewDynamoKV(dynamoClient)
	log.Println("DynamoDB client initialized.")

	// Initialize the Socket.IO hub for notification fan-out
	hub := socket.NewHub()
	go func() {
		if err := hub.Server.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()
	defer hub.Server.Close()

	// Initialize Services
	aiClient := services.NewAIClient()
	userProfileService := &services.UserProfileService{KV: kv}
	quotaService := &services.QuotaService{KV: kv}
	verificationService := &services.VerificationService{KV: kv, AI: aiClient}
	topicService := &services.TopicService{KV: kv}
	squareService := &services.SquareService{KV: kv, Topics: topicService, Notifier: hub}
	friendService := &services.FriendService{KV: kv, Notifier: hub}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.Handle("/socket.io/", hub.Server)

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, userProfileService)
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterVerificationRoutes(r, verificationService, quotaService)
	routes.RegisterMediaRoutes(r, aiClient, quotaService)
	routes.RegisterQuotaRoutes(r, quotaService)
	routes.RegisterSquareRoutes(r, squareService, userProfileService)
	routes.RegisterFriendRoutes(r, friendService)
	routes.RegisterTopicRoutes(r, topicService)
	routes.RegisterS3Routes(r)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Device-Id"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
