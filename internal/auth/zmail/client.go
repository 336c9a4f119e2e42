// Package zmail is the provider-facing auth client: authorization-code
// exchange, refresh exchange, and the two identity lookups. Every call is
// single-shot with a bounded timeout; failures propagate to the caller with
// the provider's error body attached.
package zmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/wearewright/zmail-proxy/internal/config"
)

const requestTimeout = 30 * time.Second

var (
	// ErrAuthExchange covers failures of the authorization-code exchange.
	ErrAuthExchange = errors.New("authorization code exchange failed")
	// ErrRefresh covers failures of the refresh exchange. After this error
	// the old refresh token must be assumed invalid.
	ErrRefresh = errors.New("token refresh failed")
	// ErrIdentityFetch covers failures of the current-user lookup.
	ErrIdentityFetch = errors.New("identity fetch failed")
	// ErrProfileFetch covers failures of the mailbox profile lookup.
	ErrProfileFetch = errors.New("mailbox profile fetch failed")
)

// TokenPair is the access/refresh pair returned by both exchanges.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Identity is the provider-assigned user identity.
type Identity struct {
	UserID string
	Email  string
}

// Client is the narrow interface the token lifecycle manager depends on.
type Client interface {
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	FetchIdentity(ctx context.Context, accessToken string) (*Identity, error)
	FetchMailboxProfile(ctx context.Context, accessToken string) (string, error)
}

// HTTPClient implements Client against the real provider API.
type HTTPClient struct {
	cfg        *config.Config
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewHTTPClient creates a provider auth client from validated configuration.
func NewHTTPClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		cfg:   cfg,
		oauth: OAuthConfig(cfg),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// AuthCodeURL returns the provider authorize URL for the login redirect.
func (c *HTTPClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for a token pair.
func (c *HTTPClient) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthExchange, err)
	}
	return &TokenPair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

// Refresh trades a refresh token for a new pair. If the provider does not
// rotate the refresh token, the old one is carried forward so callers always
// get a complete pair.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	src := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefresh, err)
	}

	pair := &TokenPair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}
	return pair, nil
}

// FetchIdentity calls the provider's current-user endpoint.
func (c *HTTPClient) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := c.getJSON(ctx, c.cfg.APIBaseURL+"/users/me", accessToken, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetch, err)
	}
	return &Identity{UserID: body.ID, Email: body.Email}, nil
}

// FetchMailboxProfile returns the zmail address of the mailbox the access
// token belongs to.
func (c *HTTPClient) FetchMailboxProfile(ctx context.Context, accessToken string) (string, error) {
	var body struct {
		EmailAddress string `json:"emailAddress"`
	}
	if err := c.getJSON(ctx, c.cfg.APIBaseURL+"/emails/mailboxes/me/profile", accessToken, &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	return body.EmailAddress, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
