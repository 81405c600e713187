package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tedflare/core"
)

func TestMemoryStore_KV(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.Get(ctx, "missing")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	batch, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, core.ErrStoreNotFound)
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	all, err := s.HGetAll(ctx, "users:alice")
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.HSet(ctx, "users:alice", "liked", []byte(`["1"]`)))
	require.NoError(t, s.HSet(ctx, "users:alice", "saved_talks", []byte(`["2"]`)))
	require.NoError(t, s.HSet(ctx, "users:bob", "liked", []byte(`["3"]`)))

	v, err := s.HGet(ctx, "users:alice", "liked")
	require.NoError(t, err)
	assert.Equal(t, `["1"]`, string(v))

	_, err = s.HGet(ctx, "users:alice", "watched_talks")
	assert.True(t, core.IsStoreNotFound(err))

	all, err = s.HGetAll(ctx, "users:alice")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"liked": []byte(`["1"]`), "saved_talks": []byte(`["2"]`)}, all)
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Name())
	require.NoError(t, s.Close())

	_, err = Open(context.Background(), Options{Backend: "etcd"})
	assert.True(t, core.IsStoreNotSupported(err))
}
