package rerank

import (
	"context"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，在排序（Rank）节点之后截取前 N 个物品。
// 请求级 rctx.TopK > 0 时优先于 N。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Query{},
//	        &filter.FilterNode{Filters: []filter.Filter{&filter.ExcludeFilter{}}},
//	        &rank.ScoreNode{},
//	        &rerank.TopNNode{N: 5},
//	    },
//	}
type TopNNode struct {
	// N 要保留的物品数量；N <= 0 且请求未指定 TopK 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if rctx != nil && rctx.TopK > 0 {
		limit = rctx.TopK
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
