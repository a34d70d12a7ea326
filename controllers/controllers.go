package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"trueshot_server/services"
)

// HealthCheckHandler reports service health
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// WelcomeHandler greets API browsers
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to Trueshot"))
}

// callerIdentity resolves the request to an account id or a guest pseudo-id.
// A valid bearer token wins; otherwise the X-Device-Id header identifies a
// guest as "guest_<deviceId>".
func callerIdentity(r *http.Request) (string, bool, bool) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := services.UserIDFromSessionToken(token, []byte(os.Getenv("JWT_SECRET")))
		if err == nil && userID != "" {
			return userID, false, true
		}
	}
	deviceID := r.Header.Get("X-Device-Id")
	if deviceID != "" {
		return "guest_" + deviceID, true, true
	}
	return "", false, false
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
