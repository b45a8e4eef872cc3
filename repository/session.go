package repository

import (
	"time"

	"github.com/cantina/adminctl/domain"
)

// SessionStore is the sole authority over the persisted session. Sessions
// are replaced wholesale on Save and removed atomically on Clear; nothing
// else in the program touches the underlying storage.
//
// Load returns the persisted session without validating expiry, or nil
// when logged out. IsExpired returns false when no expiry was ever
// recorded. Token satisfies the transport client's token source.
type SessionStore interface {
	Save(token string, user *domain.AdminUser, expiresIn time.Duration) error
	Load() *domain.Session
	IsExpired() bool
	Clear() error
	Token() string
}

// Storage entry names, kept compatible with the browser build of the
// dashboard so a shared backend can serve both.
const (
	KeyAuthToken  = "authToken"
	KeyAdminUser  = "adminUser"
	KeyExpiration = "tokenExpiration"
)

type unavailableStore struct{}

// Unavailable returns the store used when no persistent storage can be
// opened. The policy is centralized here: always empty, conservatively
// expired, so access is never granted on storage that cannot be read.
func Unavailable() SessionStore {
	return unavailableStore{}
}

func (unavailableStore) Save(string, *domain.AdminUser, time.Duration) error {
	return domain.ErrStorageClosed
}

func (unavailableStore) Load() *domain.Session { return nil }

func (unavailableStore) IsExpired() bool { return true }

func (unavailableStore) Clear() error { return nil }

func (unavailableStore) Token() string { return "" }
