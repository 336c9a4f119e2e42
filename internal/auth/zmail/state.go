package zmail

import (
	"crypto/rand"
	"encoding/hex"
)

// stateToken protects the login redirect against CSRF.
var stateToken string

func init() {
	b := make([]byte, 16)
	rand.Read(b)
	stateToken = hex.EncodeToString(b)
}

// GetStateToken returns the CSRF state token for validation.
func GetStateToken() string {
	return stateToken
}
