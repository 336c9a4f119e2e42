// Package token implements the credential lifecycle: bootstrapping a record
// from an authorization code, and handing out a currently-valid access token
// for a mailbox alias, refreshing and persisting transparently when the
// stored one has gone stale.
package token

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/wearewright/zmail-proxy/internal/auth/jwt"
	"github.com/wearewright/zmail-proxy/internal/auth/zmail"
	"github.com/wearewright/zmail-proxy/internal/db"
	"github.com/wearewright/zmail-proxy/internal/db/models"
	"github.com/wearewright/zmail-proxy/internal/util"
)

// ErrNoSuchAccount is returned when no credential record exists for the
// requested mailbox alias.
var ErrNoSuchAccount = errors.New("no account for mailbox")

// Manager coordinates the token store, the JWT inspector and the provider
// auth client. Refreshes are serialized per alias so two concurrent requests
// observing the same expired token produce exactly one refresh exchange.
// Two separate proxy processes sharing a database can still race; that
// variant is out of scope here.
type Manager struct {
	store  *db.Store
	client zmail.Client

	mu      sync.Mutex
	aliasMu map[string]*sync.Mutex
}

// NewManager creates a lifecycle manager.
func NewManager(store *db.Store, client zmail.Client) *Manager {
	return &Manager{
		store:   store,
		client:  client,
		aliasMu: make(map[string]*sync.Mutex),
	}
}

// Bootstrap converts an authorization code into a persisted credential
// record. The first failing step aborts the whole flow; nothing written by
// earlier steps is rolled back.
func (m *Manager) Bootstrap(ctx context.Context, code string) error {
	pair, err := m.client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	log.Printf("🔑 Exchanged authorization code (access: %s)", util.MaskToken(pair.AccessToken))

	zmailAddress, err := m.client.FetchMailboxProfile(ctx, pair.AccessToken)
	if err != nil {
		return err
	}

	identity, err := m.client.FetchIdentity(ctx, pair.AccessToken)
	if err != nil {
		return err
	}

	existing, err := m.store.FindByZmail(zmailAddress)
	switch {
	case err == nil:
		if err := m.store.UpdateTokens(existing.ID, pair.AccessToken, pair.RefreshToken); err != nil {
			return err
		}
		log.Printf("✅ Updated tokens for existing mailbox %s", zmailAddress)
		return nil
	case errors.Is(err, db.ErrNotFound):
		acc := &models.Account{
			ID:           uuid.New().String(),
			UserID:       identity.UserID,
			Email:        identity.Email,
			ZmailAddress: zmailAddress,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}
		if err := m.store.Create(acc); err != nil {
			return err
		}
		log.Printf("✅ Created account for mailbox %s (user %s)", zmailAddress, identity.UserID)
		return nil
	default:
		return err
	}
}

// GetValidAccessToken returns an access token that is not expired for the
// given mailbox alias, refreshing and persisting a new pair when needed.
// A failed refresh surfaces to the caller; the stale token is never returned.
func (m *Manager) GetValidAccessToken(ctx context.Context, alias string) (string, error) {
	acc, err := m.lookup(alias)
	if err != nil {
		return "", err
	}

	if !jwt.IsExpired(acc.AccessToken) {
		return acc.AccessToken, nil
	}

	lock := m.aliasLock(alias)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: a concurrent caller may have refreshed while
	// we were waiting.
	acc, err = m.store.FindByID(acc.ID)
	if err != nil {
		return "", err
	}
	if !jwt.IsExpired(acc.AccessToken) {
		return acc.AccessToken, nil
	}

	log.Printf("⚠️ Token for %s expired, refreshing", alias)
	pair, err := m.client.Refresh(ctx, acc.RefreshToken)
	if err != nil {
		return "", err
	}

	// Keyed by the durable record ID, not the alias.
	if err := m.store.UpdateTokens(acc.ID, pair.AccessToken, pair.RefreshToken); err != nil {
		return "", err
	}

	log.Printf("✅ Refreshed token for %s (access: %s)", alias, util.MaskToken(pair.AccessToken))
	return pair.AccessToken, nil
}

func (m *Manager) lookup(alias string) (*models.Account, error) {
	acc, err := m.store.FindByZmail(alias)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchAccount, alias)
		}
		return nil, err
	}
	return acc, nil
}

func (m *Manager) aliasLock(alias string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.aliasMu[alias]
	if !ok {
		lock = &sync.Mutex{}
		m.aliasMu[alias] = lock
	}
	return lock
}
