// Package jwt answers one question about a bearer token: is it stale. It
// decodes the payload segment only and never verifies signatures or issuers.
package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timeNow is swapped out in tests to pin the clock.
var timeNow = time.Now

// IsExpired reports whether the token's exp claim is at or before now.
// Anything that cannot be decoded (empty token, wrong segment count, bad
// base64, missing or non-numeric exp) counts as expired, so the caller
// refreshes rather than presenting a token of unknown freshness.
func IsExpired(token string) bool {
	claims, err := decodePayload(token)
	if err != nil {
		return true
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return true
	}

	// Boundary inclusive: a token expiring exactly now is already expired.
	return int64(exp) <= timeNow().Unix()
}

// decodePayload extracts the claims of a three-part JWT as an untyped map.
// Only the exp field is trusted to exist; everything else is provider detail.
func decodePayload(token string) (map[string]interface{}, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT format: expected 3 parts, got %d", len(parts))
	}

	payload := parts[1]
	// Add padding if needed
	switch len(payload) % 4 {
	case 2:
		payload += "=="
	case 3:
		payload += "="
	}

	data, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT payload: %w", err)
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}
	return claims, nil
}
