package handlers

import (
	"log/slog"
	"net/http"
	"strings"
)

// handleDBError handles database errors and writes appropriate HTTP responses.
// Returns true if error was handled, false otherwise.
func handleDBError(w http.ResponseWriter, err error, resource, resourceID string) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	slog.Error("Database error", "error", err, "resource", resource, "resource_id", resourceID)

	// Handle specific error cases
	if strings.Contains(errStr, "not found") {
		http.Error(w, capitalize(resource)+" not found", http.StatusNotFound)
		return true
	}
	if strings.Contains(errStr, "already exists") {
		http.Error(w, capitalize(resource)+" already exists", http.StatusConflict)
		return true
	}
	if strings.Contains(errStr, "already liked") {
		http.Error(w, "Post already liked", http.StatusConflict)
		return true
	}

	// Generic error
	http.Error(w, "Failed to access "+strings.ToLower(resource), http.StatusInternalServerError)
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
