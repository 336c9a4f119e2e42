// Package middleware holds request validation that runs before any core
// logic. A request with a missing required body field never reaches the
// token lifecycle or the provider.
package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RequireBodyFields validates that the JSON request body contains every
// named field. Missing fields produce a 400 with the field names; the body
// is restored for the downstream handler.
func RequireBodyFields(fields ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				badRequest(w, "unable to read request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			var body map[string]interface{}
			if err := json.Unmarshal(raw, &body); err != nil {
				badRequest(w, "request body must be JSON")
				return
			}

			var missing []string
			for _, f := range fields {
				if _, ok := body[f]; !ok {
					missing = append(missing, f)
				}
			}
			if len(missing) > 0 {
				badRequest(w, fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
