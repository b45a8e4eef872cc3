package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/repository"
)

// Monitor periodically probes the remote API and the session store so watch
// mode can skip refresh cycles while offline.
type Monitor struct {
	client transport.Caller
	store  repository.SessionStore

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(client transport.Caller, store repository.SessionStore, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		client:   client,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsOnline reports whether the last probe reached the API.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.API
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Check probes once and returns the fresh snapshot. Used by the status
// command, which should not wait for the next tick.
func (m *Monitor) Check(ctx context.Context) Status {
	status := Status{
		API:       m.checkAPI(ctx),
		LastCheck: time.Now(),
	}
	status.SessionPresent, status.SessionExpired = m.checkSession()

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.Check(ctx)
}

// checkAPI treats any HTTP answer, including 401, as reachable. Only a
// transport-level failure counts as offline.
func (m *Monitor) checkAPI(ctx context.Context) bool {
	if m.client == nil {
		return false
	}
	res := m.client.Get(ctx, "/auth/verify", nil)
	if res.StatusCode == 0 {
		m.logger.Debug("api unreachable", zap.String("error", res.Err))
		return false
	}
	return true
}

func (m *Monitor) checkSession() (present, expired bool) {
	if m.store == nil {
		return false, false
	}
	session := m.store.Load()
	if session == nil {
		return false, false
	}
	return true, m.store.IsExpired()
}
