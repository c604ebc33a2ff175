package store

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local session store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*Session)}
}

func (m *Memory) Put(_ context.Context, s *Session) error {
	cp := s.Clone()
	cp.UpdatedAt = time.Now().UTC()
	m.mu.Lock()
	m.sessions[cp.ID] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
