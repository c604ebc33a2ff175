package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwright/bookwright/internal/natsbus"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	ns, err := natsbus.StartEmbedded(t.TempDir())
	require.NoError(t, err)
	nc, err := natsbus.ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(func() { natsbus.Shutdown(nc, ns) })

	js, err := natsbus.CreateJetStream(nc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	kv, err := NewKV(ctx, js)
	require.NoError(t, err)
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	s := NewSession("abc")
	s.Concept = "A heist novel set on a generation ship."
	s.Selections["genre"] = "science_fiction"
	s.CurrentStep = 3
	require.NoError(t, kv.Put(ctx, s))

	got, err := kv.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, s.Concept, got.Concept)
	assert.Equal(t, "science_fiction", got.Selections["genre"])
	assert.Equal(t, 3, got.CurrentStep)
	assert.NotNil(t, got.AdditionalInputs)
}

func TestKVMissing(t *testing.T) {
	kv := newTestKV(t)
	_, err := kv.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVDelete(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, NewSession("abc")))
	require.NoError(t, kv.Delete(ctx, "abc"))
	_, err := kv.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "abc"))
}
