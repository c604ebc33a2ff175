package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPutGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s := NewSession("abc")
	s.Concept = "A lighthouse keeper discovers the sea is sentient."
	s.Selections["genre"] = "fantasy"
	require.NoError(t, m.Put(ctx, s))

	got, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, s.Concept, got.Concept)
	assert.Equal(t, "fantasy", got.Selections["genre"])
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s := NewSession("abc")
	require.NoError(t, m.Put(ctx, s))

	// Mutating the caller's copy after Put must not affect the store.
	s.Selections["genre"] = "horror"
	got, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got.Selections["genre"])

	// Mutating a Get result must not affect later reads.
	got.Selections["genre"] = "romance"
	again, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, again.Selections["genre"])
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, NewSession("abc")))
	require.NoError(t, m.Delete(ctx, "abc"))
	_, err := m.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, m.Delete(ctx, "abc"), "deleting a missing session is not an error")
}

func TestSessionClone(t *testing.T) {
	s := NewSession("abc")
	s.Selections["genre"] = "fantasy"
	cp := s.Clone()
	cp.Selections["genre"] = "horror"
	assert.Equal(t, "fantasy", s.Selections["genre"])
}
