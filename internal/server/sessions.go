package server

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bookwright/bookwright/internal/store"
)

// sessionIDLen keeps ids short enough to read aloud while staying unique
// per deployment.
const sessionIDLen = 12

// Sessions manages wizard session records on top of a store.
type Sessions struct {
	store store.Store
}

// NewSessions creates a session manager on st.
func NewSessions(st store.Store) *Sessions {
	return &Sessions{store: st}
}

// Create allocates a session id, persists the new record, and returns it.
func (s *Sessions) Create(ctx context.Context, concept, notes string) (*store.Session, error) {
	sess := store.NewSession(newSessionID())
	sess.Concept = concept
	sess.Notes = notes
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session; store.ErrNotFound when the id is unknown or expired.
func (s *Sessions) Get(ctx context.Context, id string) (*store.Session, error) {
	return s.store.Get(ctx, id)
}

// Save persists a mutated session.
func (s *Sessions) Save(ctx context.Context, sess *store.Session) error {
	return s.store.Put(ctx, sess)
}

// Delete removes a session.
func (s *Sessions) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:sessionIDLen]
}
