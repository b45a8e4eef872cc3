package memory

import (
	"sync"
	"time"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/repository"
)

// Store keeps the session in process memory. Used for tests and for the
// ephemeral storage backend, where a session lives exactly as long as the
// process.
type Store struct {
	mu      sync.RWMutex
	session *domain.Session
}

// New returns an empty in-memory session store.
func New() *Store {
	return &Store{}
}

var _ repository.SessionStore = (*Store)(nil)

func (s *Store) Save(token string, user *domain.AdminUser, expiresIn time.Duration) error {
	if token == "" || user == nil {
		return domain.ErrInvalidPayload
	}

	projected := *user
	session := &domain.Session{Token: token, User: &projected}
	if expiresIn > 0 {
		expiry := time.Now().Add(expiresIn)
		session.ExpiresAt = &expiry
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *Store) Load() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

func (s *Store) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil || s.session.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*s.session.ExpiresAt)
}

func (s *Store) Clear() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	return nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}
