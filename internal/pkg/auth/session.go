// internal/pkg/auth/session.go
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id is unknown, expired or revoked
var ErrSessionNotFound = errors.New("session not found")

// SessionRegistry stores live session ids and the customer each belongs to
type SessionRegistry interface {
	Create(ctx context.Context, customerID uint, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, sessionID string) (uint, error)
	Revoke(ctx context.Context, sessionID string) error
}

// NewSessionID returns a random session identifier
func NewSessionID() string {
	return uuid.NewString()
}

type memorySession struct {
	customerID uint
	expiresAt  time.Time
}

// MemoryRegistry is an in-process SessionRegistry used when redis is disabled
type MemoryRegistry struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemoryRegistry creates an empty in-process registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (m *MemoryRegistry) Create(_ context.Context, customerID uint, ttl time.Duration) (string, error) {
	id := NewSessionID()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = memorySession{customerID: customerID, expiresAt: m.now().Add(ttl)}
	return id, nil
}

func (m *MemoryRegistry) Resolve(_ context.Context, sessionID string) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !m.now().Before(sess.expiresAt) {
		delete(m.sessions, sessionID)
		return 0, ErrSessionNotFound
	}
	return sess.customerID, nil
}

func (m *MemoryRegistry) Revoke(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}
