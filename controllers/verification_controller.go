package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trueshot_server/models"
	"trueshot_server/services"

	"github.com/gorilla/mux"
)

// VerificationController handles the photo authenticity pipeline and history
type VerificationController struct {
	VerificationService *services.VerificationService
	QuotaService        *services.QuotaService
}

// NewVerificationController creates a new instance of VerificationController
func NewVerificationController(verificationService *services.VerificationService, quotaService *services.QuotaService) *VerificationController {
	return &VerificationController{VerificationService: verificationService, QuotaService: quotaService}
}

// writeQuotaError maps quota failures to actionable responses
func writeQuotaError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, services.ErrLoginRequired):
		http.Error(w, "Daily free quota used up. Please log in to continue.", http.StatusForbidden)
	case errors.Is(err, services.ErrInsufficientCredits):
		http.Error(w, "Not enough credits. Please top up.", http.StatusPaymentRequired)
	default:
		return false
	}
	return true
}

// writeAIError maps upstream AI failures after retries were exhausted
func writeAIError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, services.ErrPayloadTooLarge):
		http.Error(w, "Photos are too large. Please recompress and try again.", http.StatusRequestEntityTooLarge)
	case errors.Is(err, services.ErrAITimeout):
		http.Error(w, "Analysis timed out. Please try again.", http.StatusGatewayTimeout)
	case errors.Is(err, services.ErrAINetwork), errors.Is(err, services.ErrAIMalformed):
		http.Error(w, "Analysis service unavailable. Please try again.", http.StatusBadGateway)
	default:
		return false
	}
	return true
}

// CreateVerification runs quota check, analysis, scoring and history write
func (c *VerificationController) CreateVerification(w http.ResponseWriter, r *http.Request) {
	log.Println("CreateVerification called...")

	userID, guest, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	var payload struct {
		DeviceID string                     `json:"deviceId"`
		Request  models.VerificationRequest `json:"request"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Request.EditedPhoto == "" || len(payload.Request.ReferencePhotos) == 0 {
		http.Error(w, "Reference photos and an edited photo are required", http.StatusBadRequest)
		return
	}

	charge, err := c.QuotaService.Consume(context.TODO(), userID, guest, models.FeatureVerification)
	if err != nil {
		if !writeQuotaError(w, err) {
			log.Printf("Quota check failed: %v\n", err)
			http.Error(w, "Quota check failed", http.StatusInternalServerError)
		}
		return
	}

	record, err := c.VerificationService.PerformVerification(context.TODO(), userID, payload.DeviceID, payload.Request)
	if err != nil {
		if !writeAIError(w, err) {
			log.Printf("Verification failed: %v\n", err)
			http.Error(w, "Verification failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Verification completed",
		"record":  record,
		"charge":  charge,
	})
}

// GetHistory returns the owner's verification history, newest first
func (c *VerificationController) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	history, err := c.VerificationService.GetHistory(context.TODO(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, history)
}

// AttachDescription sets the user-authored description on one record
func (c *VerificationController) AttachDescription(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	recordID := mux.Vars(r)["recordId"]

	var payload struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	record, err := c.VerificationService.AttachDescription(context.TODO(), userID, recordID, payload.Description)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Description saved", "record": record})
}

// DeleteRecord removes one record from the owner's history
func (c *VerificationController) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	recordID := mux.Vars(r)["recordId"]

	if err := c.VerificationService.DeleteRecord(context.TODO(), userID, recordID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"message": "Record deleted"})
}

// LookupByCode resolves a 4-digit code plus device id against the owner's history
func (c *VerificationController) LookupByCode(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	code := r.URL.Query().Get("code")
	deviceID := r.URL.Query().Get("deviceId")

	if code == "" || deviceID == "" {
		http.Error(w, "Missing code or deviceId", http.StatusBadRequest)
		return
	}

	record, err := c.VerificationService.LookupByCode(context.TODO(), userID, code, deviceID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "No matching verification found", http.StatusNotFound)
			return
		}
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, record)
}
