package credcache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory Store implementation. It is safe for concurrent use
// and is the default cache attached to vendor clients.
type Memory struct {
	mu   sync.RWMutex
	data map[string]Credential

	// now is overridable for tests.
	now func() time.Time
}

// NewMemory creates a new in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]Credential),
		now:  time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*Credential, error) {
	m.mu.RLock()
	cred, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !cred.Valid(m.now()) {
		// Expired entries are dropped lazily on read.
		m.mu.Lock()
		if cur, ok := m.data[key]; ok && cur == cred {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	cp := cred
	return &cp, nil
}

func (m *Memory) Put(_ context.Context, key string, cred *Credential) error {
	m.mu.Lock()
	m.data[key] = *cred
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
