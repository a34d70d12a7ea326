package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// QuotaController serves quota status and top-ups
type QuotaController struct {
	QuotaService *services.QuotaService
}

// NewQuotaController creates a new instance of QuotaController
func NewQuotaController(quotaService *services.QuotaService) *QuotaController {
	return &QuotaController{QuotaService: quotaService}
}

// GetStatus returns today's counters, the free limit and the credit balance
func (c *QuotaController) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	_, guest, _ := callerIdentity(r)

	status, err := c.QuotaService.Status(context.TODO(), userID, guest)
	if err != nil {
		http.Error(w, "Failed to fetch quota status", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status)
}

// TopUp adds credits to the caller's balance
func (c *QuotaController) TopUp(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var payload struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Amount <= 0 {
		http.Error(w, "Invalid top-up amount", http.StatusBadRequest)
		return
	}

	balance, err := c.QuotaService.AddCredits(context.TODO(), userID, payload.Amount)
	if err != nil {
		http.Error(w, "Top-up failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Top-up successful", "balance": balance})
}
