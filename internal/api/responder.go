package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *logrus.Entry) {
	body := map[string]string{"error": message}
	if reqID := RequestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}
