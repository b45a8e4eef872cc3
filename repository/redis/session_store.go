package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/repository"
)

const opTimeout = 3 * time.Second

// Store keeps the console session in Redis, letting several operator
// machines share one login. Expiring sessions get a matching Redis TTL so
// stale entries disappear on their own.
type Store struct {
	client *redislib.Client
	key    string
	logger *zap.Logger
}

// NewStore creates a Redis-backed session store scoped by profile name.
func NewStore(client *redislib.Client, profile string, logger *zap.Logger) *Store {
	if profile == "" {
		profile = "default"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client: client,
		key:    "adminctl:session:" + profile,
		logger: logger,
	}
}

var _ repository.SessionStore = (*Store)(nil)

func (s *Store) Save(token string, user *domain.AdminUser, expiresIn time.Duration) error {
	if token == "" || user == nil {
		return domain.ErrInvalidPayload
	}

	projected := *user
	session := &domain.Session{Token: token, User: &projected}
	var ttl time.Duration
	if expiresIn > 0 {
		expiry := time.Now().Add(expiresIn)
		session.ExpiresAt = &expiry
		ttl = expiresIn
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Set(ctx, s.key, payload, ttl).Err()
}

func (s *Store) Load() *domain.Session {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err != redislib.Nil {
			s.logger.Warn("session load failed", zap.Error(err))
		}
		return nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn("stored session is malformed", zap.Error(err))
		return nil
	}
	return &session
}

func (s *Store) IsExpired() bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == redislib.Nil {
			// Logged out, nothing to expire.
			return false
		}
		s.logger.Warn("expiry check failed", zap.Error(err))
		return true
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return true
	}
	return session.IsExpired(time.Now())
}

func (s *Store) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Del(ctx, s.key).Err()
}

func (s *Store) Token() string {
	if session := s.Load(); session != nil {
		return session.Token
	}
	return ""
}
