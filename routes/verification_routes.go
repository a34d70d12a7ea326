package routes

import (
	"trueshot_server/controllers"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// RegisterVerificationRoutes sets up routes for the authenticity pipeline under /api/verifications
func RegisterVerificationRoutes(r *mux.Router, verificationService *services.VerificationService, quotaService *services.QuotaService) {
	controller := controllers.NewVerificationController(verificationService, quotaService)

	verificationRouter := r.PathPrefix("/api/verifications").Subrouter()
	verificationRouter.HandleFunc("", controller.CreateVerification).Methods("POST")
	verificationRouter.HandleFunc("/{userId}", controller.GetHistory).Methods("GET")
	verificationRouter.HandleFunc("/{userId}/lookup", controller.LookupByCode).Methods("GET")
	verificationRouter.HandleFunc("/{userId}/{recordId}/description", controller.AttachDescription).Methods("PATCH")
	verificationRouter.HandleFunc("/{userId}/{recordId}", controller.DeleteRecord).Methods("DELETE")
}
