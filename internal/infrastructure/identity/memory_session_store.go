package identity

import (
	"context"
	"sync"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"
)

// MemorySessionStore keeps sessions in process memory. Used when REDIS_URL
// is empty; sessions do not survive a restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

var _ interfaces.ISessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]time.Time), now: time.Now}
}

func (m *MemorySessionStore) Save(_ context.Context, s entities.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.ExpiresAt
	return nil
}

func (m *MemorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if m.now().After(exp) {
		delete(m.sessions, sessionID)
		return false, nil
	}
	return true, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
