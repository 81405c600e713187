package recall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/feature"
	"github.com/rushteam/tedflare/vector"
)

type testIndex struct {
	talks []core.Talk
	model *feature.Model
}

func newTestIndex(t *testing.T, tags ...string) *testIndex {
	t.Helper()
	m, err := feature.NewVectorizer().Fit(tags)
	require.NoError(t, err)
	talks := make([]core.Talk, len(tags))
	for i, tg := range tags {
		talks[i] = core.Talk{ID: int64(i), Title: tg, Tags: tg}
	}
	return &testIndex{talks: talks, model: m}
}

func (x *testIndex) Len() int { return len(x.talks) }

func (x *testIndex) Talk(id int64) (core.Talk, bool) {
	if id < 0 || id >= int64(len(x.talks)) {
		return core.Talk{}, false
	}
	return x.talks[id], true
}

func (x *testIndex) DocVector(id int64) (vector.Sparse, bool) {
	return x.model.Vector(int(id))
}

func (x *testIndex) Transform(text string) vector.Sparse { return x.model.Transform(text) }

func scoresByID(items []*core.Item) map[int64]float64 {
	out := make(map[int64]float64, len(items))
	for _, it := range items {
		out[it.ID] = it.Score
	}
	return out
}

func TestItemSimilarity(t *testing.T) {
	idx := newTestIndex(t, "ai machine learning", "ai robotics", "cooking recipes")
	rctx := &core.RecommendContext{Index: idx, ItemID: 0}

	items, err := (&ItemSimilarity{}).Recall(context.Background(), rctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	s := scoresByID(items)
	assert.InDelta(t, 1.0, s[0], 1e-9)
	assert.Greater(t, s[1], s[2])
	assert.Equal(t, 0.0, s[2])
	assert.Equal(t, "ai robotics", items[1].Meta["title"])
	assert.Equal(t, "item", items[1].Labels["recall_source"].Value)

	rctx.ItemID = 7
	_, err = (&ItemSimilarity{}).Recall(context.Background(), rctx)
	assert.ErrorIs(t, err, core.ErrUnknownItem)
	assert.Contains(t, err.Error(), "7")
}

func TestProfile(t *testing.T) {
	idx := newTestIndex(t, "ai machine learning", "ai robotics", "cooking recipes")

	t.Run("mean of liked and watched", func(t *testing.T) {
		rctx := &core.RecommendContext{
			Index:        idx,
			Interactions: core.NewInteractionSet([]int64{0}, []int64{1}, []int64{2}),
		}
		items, err := (&Profile{}).Process(context.Background(), rctx, nil)
		require.NoError(t, err)
		s := scoresByID(items)
		assert.Greater(t, s[0], 0.0)
		assert.Greater(t, s[1], 0.0)
		assert.Equal(t, 0.0, s[2])
	})

	t.Run("out of range ids are ignored", func(t *testing.T) {
		rctx := &core.RecommendContext{
			Index:        idx,
			Interactions: core.NewInteractionSet([]int64{2, 99}, nil, nil),
		}
		items, err := (&Profile{}).Recall(context.Background(), rctx)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, scoresByID(items)[2], 1e-9)
	})

	t.Run("saved only is not enough", func(t *testing.T) {
		rctx := &core.RecommendContext{
			Index:        idx,
			Interactions: core.NewInteractionSet(nil, []int64{42}, []int64{0}),
		}
		_, err := (&Profile{}).Recall(context.Background(), rctx)
		assert.True(t, core.IsEmptyInteraction(err))
	})
}

func TestQuery(t *testing.T) {
	idx := newTestIndex(t, "ai machine learning", "ai robotics", "cooking recipes")

	items, err := (&Query{}).Recall(context.Background(), &core.RecommendContext{Index: idx, Query: "AI"})
	require.NoError(t, err)
	s := scoresByID(items)
	assert.Greater(t, s[0], 0.0)
	assert.Greater(t, s[1], s[0])
	assert.Equal(t, 0.0, s[2])

	items, err = (&Query{}).Recall(context.Background(), &core.RecommendContext{Index: idx})
	require.NoError(t, err)
	for _, it := range items {
		assert.Equal(t, 0.0, it.Score)
	}
}

func TestRecall_MissingIndex(t *testing.T) {
	for _, src := range []Source{&ItemSimilarity{}, &Profile{}, &Query{}} {
		_, err := src.Recall(context.Background(), &core.RecommendContext{})
		assert.ErrorIs(t, err, core.ErrInvalidInput, src.Name())
	}
}
