package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/store"
)

func newTestStore(t *testing.T) (*Store, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv, "", zap.NewNop()), kv
}

func TestStore_GetMissingUser(t *testing.T) {
	s, _ := newTestStore(t)
	set, err := s.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, set.Empty())
	assert.Empty(t, set.Interacted())
}

func TestStore_GetEmptyUserID(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestStore_WritesAndReads(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Like(ctx, "alice", 3))
	require.NoError(t, s.Like(ctx, "alice", 3))
	require.NoError(t, s.Like(ctx, "alice", 1))
	require.NoError(t, s.Watch(ctx, "alice", 5))
	require.NoError(t, s.Save(ctx, "alice", 8))
	require.NoError(t, s.Save(ctx, "alice", 9))
	require.NoError(t, s.Unsave(ctx, "alice", 9))
	require.NoError(t, s.Unlike(ctx, "alice", 1))
	require.NoError(t, s.Unlike(ctx, "alice", 42))

	set, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, set.Interacted())
	assert.Equal(t, []int64{3, 5, 8}, set.Seen())

	assert.Error(t, s.Like(ctx, "alice", -1))
	assert.Error(t, s.Like(ctx, "", 1))
}

func TestStore_ToleratesCorruptData(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	require.NoError(t, kv.HSet(ctx, "users:bob", FieldLiked, []byte(`["2", "abc", "-4", " 7 "]`)))
	require.NoError(t, kv.HSet(ctx, "users:bob", FieldWatched, []byte(`not json`)))
	require.NoError(t, kv.HSet(ctx, "users:bob", FieldSaved, []byte(`["11"]`)))

	set, err := s.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 7}, set.Interacted())
	assert.Equal(t, []int64{2, 7, 11}, set.Seen())

	require.NoError(t, s.Watch(ctx, "bob", 4))
	set, err = s.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 7}, set.Interacted())
}
