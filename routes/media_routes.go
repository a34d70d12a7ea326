package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up routes for the outfit-swap generator and image source lookup
func RegisterMediaRoutes(r *mux.Router, aiClient *services.AIClient, quotaService *services.QuotaService) {
	controller := controllers.NewMediaController(aiClient, quotaService)

	r.HandleFunc("/api/outfit-swap", controller.OutfitSwap).Methods("POST")
	r.HandleFunc("/api/image-source", controller.ImageSource).Methods("POST")
}
