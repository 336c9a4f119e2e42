// Package handlers exposes the proxy's HTTP surface: the OAuth callback and
// the mail operation endpoints. Core errors are logged with detail and
// translated into generic 5xx responses; token material never leaves in a
// response body.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/wearewright/zmail-proxy/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeInternalError logs the real error and returns a generic message.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("❌ [%s] %s %s: %v", logging.GetRequestID(r.Context()), r.Method, r.URL.Path, err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
