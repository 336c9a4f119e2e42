package handlers

import (
	"context"
	"net/http"

	"github.com/wearewright/zmail-proxy/internal/auth/zmail"
)

// Bootstrapper converts an authorization code into a persisted credential
// record.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, code string) error
}

// LoginHandler redirects to the provider's consent page.
func LoginHandler(client *zmail.HTTPClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, client.AuthCodeURL(zmail.GetStateToken()), http.StatusTemporaryRedirect)
	}
}

// CallbackHandler processes the OAuth authorization callback. The state
// parameter is verified when present; provider-initiated installs omit it.
func CallbackHandler(mgr Bootstrapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state := r.URL.Query().Get("state"); state != "" && state != zmail.GetStateToken() {
			writeBadRequest(w, "invalid state token")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			writeBadRequest(w, "code query parameter is required")
			return
		}

		if err := mgr.Bootstrap(r.Context(), code); err != nil {
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "authorized"})
	}
}
