package handlers

import (
	"net/http"
	"time"

	"github.com/wearewright/zmail-proxy/internal/db"
	"github.com/wearewright/zmail-proxy/internal/util"
)

type accountView struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	ZmailAddress string    `json:"zmail_address"`
	AccessToken  string    `json:"access_token"` // masked
	CreatedAt    time.Time `json:"created_at"`
}

// AccountsHandler lists stored credential records with masked tokens.
func AccountsHandler(store *db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := store.All()
		if err != nil {
			writeInternalError(w, r, err)
			return
		}

		views := make([]accountView, 0, len(accounts))
		for _, acc := range accounts {
			views = append(views, accountView{
				ID:           acc.ID,
				UserID:       acc.UserID,
				Email:        acc.Email,
				ZmailAddress: acc.ZmailAddress,
				AccessToken:  util.MaskToken(acc.AccessToken),
				CreatedAt:    acc.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, views)
	}
}
