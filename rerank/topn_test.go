package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tedflare/core"
)

func TestTopNNode(t *testing.T) {
	in := []*core.Item{core.NewItem(0), core.NewItem(1), core.NewItem(2)}

	tests := []struct {
		name string
		n    int
		topK int
		want int
	}{
		{name: "no limit", n: 0, want: 3},
		{name: "node limit", n: 2, want: 2},
		{name: "request overrides node", n: 2, topK: 1, want: 1},
		{name: "limit above length", n: 10, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&TopNNode{N: tt.n}).Process(context.Background(), &core.RecommendContext{TopK: tt.topK}, in)
			require.NoError(t, err)
			assert.Len(t, out, tt.want)
			assert.Equal(t, int64(0), out[0].ID)
		})
	}
}
