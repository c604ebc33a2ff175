package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	kvBucket = "wizard_sessions"
	// Abandoned sessions expire after a day, matching the service contract
	// that stale session ids return not-found.
	kvTTL = 24 * time.Hour
)

// KV stores sessions in a NATS JetStream key-value bucket, so sessions
// survive service restarts and expire on their own.
type KV struct {
	kv jetstream.KeyValue
}

// NewKV creates or binds the session bucket on js.
func NewKV(ctx context.Context, js jetstream.JetStream) (*KV, error) {
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  kvBucket,
		TTL:     kvTTL,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &KV{kv: kv}, nil
}

func (k *KV) Put(ctx context.Context, s *Session) error {
	cp := s.Clone()
	cp.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if _, err := k.kv.Put(ctx, s.ID, data); err != nil {
		return fmt.Errorf("store session %s: %w", s.ID, err)
	}
	return nil
}

func (k *KV) Get(ctx context.Context, id string) (*Session, error) {
	entry, err := k.kv.Get(ctx, id)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(entry.Value(), &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Selections == nil {
		s.Selections = make(map[string]string)
	}
	if s.AdditionalInputs == nil {
		s.AdditionalInputs = make(map[string]string)
	}
	return &s, nil
}

func (k *KV) Delete(ctx context.Context, id string) error {
	if err := k.kv.Delete(ctx, id); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
