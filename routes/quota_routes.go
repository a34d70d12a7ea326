package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterQuotaRoutes sets up routes for quota status and top-ups under /api/quota
func RegisterQuotaRoutes(r *mux.Router, quotaService *services.QuotaService) {
	controller := controllers.NewQuotaController(quotaService)

	quotaRouter := r.PathPrefix("/api/quota").Subrouter()
	quotaRouter.HandleFunc("/{userId}", controller.GetStatus).Methods("GET")
	quotaRouter.HandleFunc("/{userId}/topup", controller.TopUp).Methods("POST")
}
