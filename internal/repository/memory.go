package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryEntry struct {
	session   entity.GameSession
	expiresAt time.Time
}

// memorySession keeps copies, callers never share a session value with the store.
// Like the redis repository, every write pushes the expiry forward; ttl 0 keeps sessions forever.
type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry

	ttl time.Duration
	now func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySession(ttl, time.Now)
}

func newMemorySession(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      now,
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.GameSession) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	entry := memoryEntry{session: *session}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.sessions[session.ID] = entry

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.GameSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.sessions[id]
	if !ok || that.isExpired(entry) {
		return nil, apperror.ErrSessionNotFound
	}

	return &entry.session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	if that.isExpired(entry) {
		return apperror.ErrSessionNotFound
	}

	return nil
}

// evictExpired - drops expired entries, the caller holds the write lock.
func (that *memorySession) evictExpired() {
	if that.ttl <= 0 {
		return
	}

	for id, entry := range that.sessions {
		if that.isExpired(entry) {
			delete(that.sessions, id)
		}
	}
}

func (that *memorySession) isExpired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}
