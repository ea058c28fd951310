package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gomoku/internal/storage"
)

const (
	DefaultIdleTTL     = 2 * time.Hour
	CleanupJobInterval = 5 * time.Minute
	MaxGames           = 1000
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrResourceLimit = errors.New("game limit reached")
)

// Service owns every live game session and their optional audit log
type Service struct {
	games  map[string]*session
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
	now    func() time.Time
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*session),
		store:  store,
		waiter: NewWaitRegistry(),
		now:    time.Now,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GameCount returns the number of live sessions
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// RegisterWait registers a client to wait for a game version other than version.
// The check and the registration happen under the session lock, so a mutation
// is either seen here or notified to the new waiter.
func (s *Service) RegisterWait(gameID string, version int, ctx context.Context) <-chan struct{} {
	sess, err := s.lookup(gameID)
	if err != nil {
		return signalled()
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.removed || sess.version != version {
		return signalled()
	}
	return s.waiter.RegisterWait(gameID, version, ctx)
}

// Waiting returns the number of long-poll clients registered on a game
func (s *Service) Waiting(gameID string) int {
	return s.waiter.Waiting(gameID)
}

// Shutdown releases waiters and drains storage
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*session)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob evicts games idle for longer than ttl until ctx is done
func (s *Service) RunCleanupJob(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(ttl); n > 0 {
				log.Printf("cleanup: evicted %d idle games", n)
			}
		}
	}
}

// EvictIdle removes sessions untouched for longer than ttl and returns how many
func (s *Service) EvictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var expired []string
	for id, sess := range s.games {
		sess.mu.Lock()
		if sess.lastActive.Before(cutoff) {
			sess.removed = true
			expired = append(expired, id)
		}
		sess.mu.Unlock()
	}
	for _, id := range expired {
		delete(s.games, id)
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.waiter.RemoveGame(id)
	}
	return len(expired)
}
