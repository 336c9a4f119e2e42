package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wearewright/zmail-proxy/internal/config"
)

type staticTokens struct {
	token string
	err   error
	calls int
}

func (s *staticTokens) GetValidAccessToken(ctx context.Context, alias string) (string, error) {
	s.calls++
	return s.token, s.err
}

func newTestService(t *testing.T, handler http.HandlerFunc, tokens TokenProvider) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc := NewService(&config.Config{APIBaseURL: srv.URL}, tokens)
	return svc, srv
}

func decodeRaw(t *testing.T, r *http.Request) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(body["raw"])
	if err != nil {
		t.Fatalf("raw field is not base64: %v", err)
	}
	return string(raw)
}

func TestSendMessage(t *testing.T) {
	tokens := &staticTokens{token: "tok-1"}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails/mailboxes/devtest@zmail.com/messages/send" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		msg := decodeRaw(t, r)
		if !strings.Contains(msg, "To: dev@example.com") {
			t.Errorf("recipient missing from message:\n%s", msg)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg-1"}`))
	}, tokens)

	resp, err := svc.SendMessage(context.Background(), "devtest@zmail.com", "dev@example.com")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp["id"] != "msg-1" {
		t.Fatalf("unexpected response %v", resp)
	}
}

func TestCreateTrashMessage_SetsDeletedFlag(t *testing.T) {
	tokens := &staticTokens{token: "tok-1"}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails/mailboxes/devtest@zmail.com/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("deleted") != "true" {
			t.Errorf("expected deleted=true, got query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{}`))
	}, tokens)

	if _, err := svc.CreateTrashMessage(context.Background(), "devtest@zmail.com", "dev@example.com"); err != nil {
		t.Fatalf("CreateTrashMessage: %v", err)
	}
}

func TestCreateDraftMessage(t *testing.T) {
	tokens := &staticTokens{token: "tok-1"}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails/mailboxes/devtest@zmail.com/drafts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"draft-1"}`))
	}, tokens)

	if _, err := svc.CreateDraftMessage(context.Background(), "devtest@zmail.com", "dev@example.com"); err != nil {
		t.Fatalf("CreateDraftMessage: %v", err)
	}
}

func TestCreateLabel(t *testing.T) {
	tokens := &staticTokens{token: "tok-1"}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails/mailboxes/devtest@zmail.com/labels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "Receipts" {
			t.Errorf("label name = %q", body["name"])
		}
		if _, ok := body["parentId"]; !ok {
			t.Error("expected parentId field")
		}
		w.Write([]byte(`{"id":"label-1"}`))
	}, tokens)

	if _, err := svc.CreateLabel(context.Background(), "devtest@zmail.com", "Receipts"); err != nil {
		t.Fatalf("CreateLabel: %v", err)
	}
}

func TestGetMailboxProfile(t *testing.T) {
	tokens := &staticTokens{token: "tok-1"}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/emails/mailboxes/me/profile" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"emailAddress":"devtest@zmail.com"}`))
	}, tokens)

	resp, err := svc.GetMailboxProfile(context.Background(), "devtest@zmail.com")
	if err != nil {
		t.Fatalf("GetMailboxProfile: %v", err)
	}
	if resp["emailAddress"] != "devtest@zmail.com" {
		t.Fatalf("unexpected response %v", resp)
	}
}

func TestSend_TokenFailureShortCircuits(t *testing.T) {
	wantErr := errors.New("no account for mailbox")
	tokens := &staticTokens{err: wantErr}
	hits := 0
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	}, tokens)

	_, err := svc.SendMessage(context.Background(), "nobody@zmail.com", "dev@example.com")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected token error, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no provider call after token failure, got %d", hits)
	}
}

func TestSend_ProviderErrorCarriesBody(t *testing.T) {
	tokens := &staticTokens{token: "tok-1"}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"rate limited"}`))
	}, tokens)

	_, err := svc.SendMessage(context.Background(), "devtest@zmail.com", "dev@example.com")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected provider body in error, got %v", err)
	}
}
