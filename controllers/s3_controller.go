package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trueshot_server/services"
)

// GeneratePresignedURL generates a presigned URL for photo uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	log.Println("GeneratePresignedURL: Received request")

	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if payload.FileName == "" || payload.FileType == "" {
		log.Println("Error: Missing required fields in request payload")
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	url, key, err := services.GenerateUploadURL(payload.FileName, payload.FileType)
	if errors.Is(err, services.ErrUnsupportedPhotoType) {
		log.Printf("Rejected upload with content type %q", payload.FileType)
		http.Error(w, "Unsupported photo content type", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		http.Error(w, "Failed to generate pre-signed URL", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"uploadUrl": url, "key": key})
}

// GetReadURL generates a presigned URL for reading a stored photo
func GetReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key", http.StatusBadRequest)
		return
	}

	url, err := services.GenerateReadURL(key)
	if err != nil {
		log.Printf("Error generating read URL: %v", err)
		http.Error(w, "Failed to generate read URL", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"readUrl": url})
}
