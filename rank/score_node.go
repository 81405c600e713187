package rank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/pkg/utils"
)

// ScoreNode 按召回阶段写入的相似度排序，顺序规则与 Rank 一致。
// - 写入 labels：rank_position（从 1 开始）
type ScoreNode struct{}

func (n *ScoreNode) Name() string        { return "rank.score" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return Less(Scored{ID: out[i].ID, Score: out[i].Score}, Scored{ID: out[j].ID, Score: out[j].Score})
	})
	for i, it := range out {
		it.PutLabel("rank_position", utils.Label{Value: strconv.Itoa(i + 1), Source: "rank"})
	}
	return out, nil
}
