package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wearewright/zmail-proxy/internal/db/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate is returned when a create violates the zmail unique index.
	ErrDuplicate = errors.New("account already exists")
)

// Store wraps the gorm handle with the account operations the token
// lifecycle needs. Single-row atomicity only; no cross-call transactions.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of an initialized database.
func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// FindByZmail returns the account for a mailbox alias. If duplicates somehow
// exist, the most recently created record wins.
func (s *Store) FindByZmail(zmail string) (*models.Account, error) {
	var acc models.Account
	err := s.db.Where("zmail_address = ?", zmail).Order("created_at DESC").First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("zmail %s: %w", zmail, ErrNotFound)
		}
		return nil, err
	}
	return &acc, nil
}

// FindByID returns the account with the given record ID.
func (s *Store) FindByID(id string) (*models.Account, error) {
	var acc models.Account
	err := s.db.First(&acc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("id %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &acc, nil
}

// Create inserts a new account record.
func (s *Store) Create(acc *models.Account) error {
	if err := s.db.Create(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("zmail %s: %w", acc.ZmailAddress, ErrDuplicate)
		}
		return err
	}
	return nil
}

// UpdateTokens overwrites both tokens of an existing record. The provider
// rotates the pair together on refresh, so they are never written
// independently. CreatedAt is left alone.
func (s *Store) UpdateTokens(id, accessToken, refreshToken string) error {
	res := s.db.Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("id %s: %w", id, ErrNotFound)
	}
	return nil
}

// All returns every stored account, newest first.
func (s *Store) All() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// isUniqueViolation detects sqlite unique-index errors without depending on
// driver error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
