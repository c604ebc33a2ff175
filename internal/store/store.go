// Package store persists wizard sessions on the service side. Two
// implementations exist: an in-memory map for tests and single-process use,
// and a NATS JetStream key-value bucket for durable sessions.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session id has no record, typically because
// it never existed or expired.
var ErrNotFound = errors.New("store: session not found")

// Session is the persisted state of one wizard run.
type Session struct {
	ID               string            `json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	CurrentStep      int               `json:"current_step"`
	Concept          string            `json:"concept"`
	Notes            string            `json:"notes,omitempty"`
	Selections       map[string]string `json:"selections"`
	AdditionalInputs map[string]string `json:"additional_inputs,omitempty"`
	Complete         bool              `json:"complete,omitempty"`
}

// NewSession creates an empty session record.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:               id,
		CreatedAt:        now,
		UpdatedAt:        now,
		CurrentStep:      1,
		Selections:       make(map[string]string),
		AdditionalInputs: make(map[string]string),
	}
}

// Clone deep-copies the session so callers can mutate it freely.
func (s *Session) Clone() *Session {
	out := *s
	out.Selections = make(map[string]string, len(s.Selections))
	for k, v := range s.Selections {
		out.Selections[k] = v
	}
	out.AdditionalInputs = make(map[string]string, len(s.AdditionalInputs))
	for k, v := range s.AdditionalInputs {
		out.AdditionalInputs[k] = v
	}
	return &out
}

// Store persists sessions by id.
type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
