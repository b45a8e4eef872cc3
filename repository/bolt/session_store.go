package bolt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/repository"
)

const bucketName = "session"

// Store persists the session in a local BoltDB file, the console's stand-in
// for the browser's origin-scoped storage.
type Store struct {
	db     *bolt.DB
	bucket []byte
	logger *zap.Logger
}

// Open initializes the BoltDB file and ensures the session bucket exists.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucketName),
		logger: logger,
	}, nil
}

var _ repository.SessionStore = (*Store)(nil)

// Save replaces the persisted session in a single transaction.
func (s *Store) Save(token string, user *domain.AdminUser, expiresIn time.Duration) error {
	if s == nil || s.db == nil {
		return domain.ErrStorageClosed
	}
	if token == "" || user == nil {
		return domain.ErrInvalidPayload
	}

	userPayload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if err := b.Put([]byte(repository.KeyAuthToken), []byte(token)); err != nil {
			return err
		}
		if err := b.Put([]byte(repository.KeyAdminUser), userPayload); err != nil {
			return err
		}
		if expiresIn > 0 {
			expiry := time.Now().Add(expiresIn).UnixMilli()
			return b.Put([]byte(repository.KeyExpiration), []byte(strconv.FormatInt(expiry, 10)))
		}
		return b.Delete([]byte(repository.KeyExpiration))
	})
}

// Load returns the persisted session without validating expiry, or nil when
// no session is stored or the storage cannot be read.
func (s *Store) Load() *domain.Session {
	if s == nil || s.db == nil {
		return nil
	}

	var session *domain.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)

		token := b.Get([]byte(repository.KeyAuthToken))
		if len(token) == 0 {
			return nil
		}

		loaded := &domain.Session{Token: string(token)}

		if raw := b.Get([]byte(repository.KeyAdminUser)); len(raw) > 0 {
			var user domain.AdminUser
			if err := json.Unmarshal(raw, &user); err == nil {
				loaded.User = &user
			}
		}
		if raw := b.Get([]byte(repository.KeyExpiration)); len(raw) > 0 {
			if millis, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
				expiry := time.UnixMilli(millis)
				loaded.ExpiresAt = &expiry
			}
		}

		session = loaded
		return nil
	})
	if err != nil {
		s.logger.Warn("session load failed", zap.Error(err))
		return nil
	}
	return session
}

// IsExpired reports whether the recorded expiry has passed. A session that
// never recorded an expiry does not expire; storage that cannot be read is
// treated as expired so access is never wrongly granted.
func (s *Store) IsExpired() bool {
	if s == nil || s.db == nil {
		return true
	}

	expired := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(repository.KeyExpiration))
		if len(raw) == 0 {
			return nil
		}
		millis, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil
		}
		expired = time.Now().After(time.UnixMilli(millis))
		return nil
	})
	if err != nil {
		s.logger.Warn("expiry check failed", zap.Error(err))
		return true
	}
	return expired
}

// Clear removes token, user and expiry in one transaction.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		for _, key := range []string{repository.KeyAuthToken, repository.KeyAdminUser, repository.KeyExpiration} {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Token returns the stored bearer token, or empty when logged out.
func (s *Store) Token() string {
	if session := s.Load(); session != nil {
		return session.Token
	}
	return ""
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
