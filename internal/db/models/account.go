package models

import "time"

// Account stores the OAuth identity and token pair for one mailbox.
// ZmailAddress is the lookup alias used by all mail operations; UserID is the
// provider-assigned stable identity behind it.
type Account struct {
	ID           string `gorm:"primaryKey"` // UUID
	UserID       string `gorm:"index"`
	Email        string
	ZmailAddress string `gorm:"uniqueIndex"`
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time // set at bootstrap, untouched by refreshes
	UpdatedAt    time.Time
}
