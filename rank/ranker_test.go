package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tedflare/core"
)

func TestRank(t *testing.T) {
	scores := []Scored{
		{ID: 4, Score: 0.2},
		{ID: 1, Score: 0.9},
		{ID: 3, Score: 0.5},
		{ID: 0, Score: 0.5},
		{ID: 2, Score: 0},
	}

	tests := []struct {
		name    string
		exclude map[int64]struct{}
		k       int
		want    []int64
	}{
		{name: "ties by ascending id", k: 5, want: []int64{1, 0, 3, 4, 2}},
		{name: "truncate", k: 2, want: []int64{1, 0}},
		{name: "exclude before truncation", exclude: map[int64]struct{}{1: {}, 0: {}}, k: 2, want: []int64{3, 4}},
		{name: "fewer than k", exclude: map[int64]struct{}{1: {}}, k: 10, want: []int64{0, 3, 4, 2}},
		{name: "all excluded", exclude: map[int64]struct{}{0: {}, 1: {}, 2: {}, 3: {}, 4: {}}, k: 3, want: []int64{}},
		{name: "non-positive k", k: 0, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(scores, tt.exclude, tt.k)
			assert.Equal(t, tt.want, got)
			for _, id := range got {
				assert.NotContains(t, tt.exclude, id)
			}
		})
	}
}

func TestRank_Deterministic(t *testing.T) {
	scores := make([]Scored, 0, 50)
	for i := 49; i >= 0; i-- {
		scores = append(scores, Scored{ID: int64(i), Score: float64(i % 3)})
	}
	first := Rank(scores, nil, 20)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Rank(scores, nil, 20))
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if prev%3 == cur%3 {
			assert.Less(t, prev, cur)
		} else {
			assert.Greater(t, prev%3, cur%3)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	scores := []Scored{{ID: 1, Score: 0.1}, {ID: 0, Score: 0.9}}
	Rank(scores, nil, 2)
	assert.Equal(t, []Scored{{ID: 1, Score: 0.1}, {ID: 0, Score: 0.9}}, scores)
}

func TestScoreNode(t *testing.T) {
	mk := func(id int64, score float64) *core.Item {
		it := core.NewItem(id)
		it.Score = score
		return it
	}
	in := []*core.Item{mk(2, 0.1), nil, mk(1, 0.7), mk(0, 0.1)}

	out, err := (&ScoreNode{}).Process(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []int64{1, 0, 2}, []int64{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, "1", out[0].Labels["rank_position"].Value)
	assert.Equal(t, "3", out[2].Labels["rank_position"].Value)
}
