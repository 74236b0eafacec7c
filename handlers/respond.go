package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reelgrid/services/metadata"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCatalogError maps catalog failures onto HTTP statuses: a missing API
// key is a config problem, a catalog 404 stays a 404, everything else is an
// upstream failure.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metadata.ErrNotConfigured):
		writeJSONError(w, err.Error(), http.StatusServiceUnavailable)
	case metadata.IsNotFound(err):
		writeJSONError(w, "title not found", http.StatusNotFound)
	default:
		writeJSONError(w, err.Error(), http.StatusBadGateway)
	}
}
