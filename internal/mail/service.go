// Package mail forwards mail operations to the provider's REST API. Each
// operation obtains a valid bearer token for the mailbox alias first, then
// issues a single non-retrying HTTP call.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/wearewright/zmail-proxy/internal/config"
	"github.com/wearewright/zmail-proxy/internal/util"
)

// TokenProvider hands out a currently-valid access token for a mailbox alias.
type TokenProvider interface {
	GetValidAccessToken(ctx context.Context, alias string) (string, error)
}

// Service implements the mail operations against the provider API.
type Service struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
}

// NewService creates a mail service from validated configuration.
func NewService(cfg *config.Config, tokens TokenProvider) *Service {
	return &Service{
		baseURL: cfg.APIBaseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendMessage sends a generated message from the mailbox to toEmail.
func (s *Service) SendMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	log.Printf("📧 Sending mail message from %s", mailbox)
	path := fmt.Sprintf("/emails/mailboxes/%s/messages/send", url.PathEscape(mailbox))
	body := map[string]string{"raw": BuildMessage(mailbox, toEmail)}
	return s.send(ctx, mailbox, http.MethodPost, path, body)
}

// CreateMessage places a generated message directly into the inbox.
func (s *Service) CreateMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	log.Printf("📧 Adding mail message to inbox of %s", mailbox)
	path := fmt.Sprintf("/emails/mailboxes/%s/messages", url.PathEscape(mailbox))
	body := map[string]string{"raw": BuildMessage(mailbox, toEmail)}
	return s.send(ctx, mailbox, http.MethodPost, path, body)
}

// CreateTrashMessage places a generated message into the trash folder.
func (s *Service) CreateTrashMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	log.Printf("🗑️ Creating message in trash folder of %s", mailbox)
	path := fmt.Sprintf("/emails/mailboxes/%s/messages?deleted=true", url.PathEscape(mailbox))
	body := map[string]string{"raw": BuildMessage(mailbox, toEmail)}
	return s.send(ctx, mailbox, http.MethodPost, path, body)
}

// CreateDraftMessage places a generated message into the drafts folder.
func (s *Service) CreateDraftMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	log.Printf("📝 Creating draft message in %s", mailbox)
	path := fmt.Sprintf("/emails/mailboxes/%s/drafts", url.PathEscape(mailbox))
	body := map[string]string{"raw": BuildMessage(mailbox, toEmail)}
	return s.send(ctx, mailbox, http.MethodPost, path, body)
}

// CreateLabel creates a top-level label in the mailbox.
func (s *Service) CreateLabel(ctx context.Context, mailbox, labelName string) (map[string]interface{}, error) {
	log.Printf("🏷️ Creating label %q in %s", labelName, mailbox)
	path := fmt.Sprintf("/emails/mailboxes/%s/labels", url.PathEscape(mailbox))
	body := map[string]string{"name": labelName, "parentId": ""}
	return s.send(ctx, mailbox, http.MethodPost, path, body)
}

// GetMailboxProfile fetches the profile of the mailbox the token belongs to.
func (s *Service) GetMailboxProfile(ctx context.Context, mailbox string) (map[string]interface{}, error) {
	log.Printf("👤 Fetching mailbox profile for %s", mailbox)
	return s.send(ctx, mailbox, http.MethodGet, "/emails/mailboxes/me/profile", nil)
}

// send resolves a bearer token for the mailbox and performs one provider
// call. Non-2xx responses become errors carrying the provider body.
func (s *Service) send(ctx context.Context, mailbox, method, path string, body interface{}) (map[string]interface{}, error) {
	token, err := s.tokens.GetValidAccessToken(ctx, mailbox)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider %s %s: status %d: %s", method, path, resp.StatusCode, util.TruncateLog(string(raw), util.DefaultLogMaxLen))
	}

	result := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("decode provider response: %w", err)
		}
	}
	return result, nil
}
