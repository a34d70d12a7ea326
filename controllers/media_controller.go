package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"trueshot_server/models"
	"trueshot_server/services"
)

// MediaController handles the outfit-swap generator and the image source lookup
type MediaController struct {
	AIClient     *services.AIClient
	QuotaService *services.QuotaService
}

// NewMediaController creates a new instance of MediaController
func NewMediaController(aiClient *services.AIClient, quotaService *services.QuotaService) *MediaController {
	return &MediaController{AIClient: aiClient, QuotaService: quotaService}
}

// OutfitSwap generates an outfit-swapped image, gated by the daily quota
func (c *MediaController) OutfitSwap(w http.ResponseWriter, r *http.Request) {
	log.Println("OutfitSwap called...")

	userID, guest, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Prompt      string                    `json:"prompt"`
		Images      []services.EditImageInput `json:"images"`
		AspectRatio string                    `json:"aspectRatio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Prompt == "" || len(payload.Images) == 0 {
		http.Error(w, "Prompt and at least one image are required", http.StatusBadRequest)
		return
	}

	charge, err := c.QuotaService.Consume(context.TODO(), userID, guest, models.FeatureOutfitChange)
	if err != nil {
		if !writeQuotaError(w, err) {
			http.Error(w, "Quota check failed", http.StatusInternalServerError)
		}
		return
	}

	edited, err := c.AIClient.EditImage(context.TODO(), payload.Prompt, payload.Images, payload.AspectRatio)
	if err != nil {
		if !writeAIError(w, err) {
			log.Printf("Outfit swap failed: %v\n", err)
			http.Error(w, "Outfit swap failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Outfit swap completed",
		"image":   edited,
		"charge":  charge,
	})
}

// ImageSource asks the analysis endpoint where an image likely came from
func (c *MediaController) ImageSource(w http.ResponseWriter, r *http.Request) {
	log.Println("ImageSource called...")

	userID, guest, ok := callerIdentity(r)
	if !ok {
		http.Error(w, "Missing credentials or device id", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Image == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	charge, err := c.QuotaService.Consume(context.TODO(), userID, guest, models.FeatureImageSource)
	if err != nil {
		if !writeQuotaError(w, err) {
			http.Error(w, "Quota check failed", http.StatusInternalServerError)
		}
		return
	}

	description, err := c.AIClient.DescribeImageSource(context.TODO(), payload.Image)
	if err != nil {
		if !writeAIError(w, err) {
			log.Printf("Image source lookup failed: %v\n", err)
			http.Error(w, "Image source lookup failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Image source lookup completed",
		"source":  description,
		"charge":  charge,
	})
}
