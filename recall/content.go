package recall

import (
	"context"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/feature"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/pkg/utils"
	"github.com/rushteam/tedflare/vector"
)

// 三种内容召回都对捕获的快照做全目录余弦打分，每个物品输出一条，按 ID 顺序。
// 排除与截断交给后续的 filter / rank / rerank 节点。

// ItemSimilarity 是"相似演讲"召回：查询向量为种子物品的文档向量。
type ItemSimilarity struct{}

func (r *ItemSimilarity) Name() string        { return "recall.item" }
func (r *ItemSimilarity) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *ItemSimilarity) Process(ctx context.Context, rctx *core.RecommendContext, _ []*core.Item) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *ItemSimilarity) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Index == nil {
		return nil, core.ErrInvalidInput
	}
	q, ok := rctx.Index.DocVector(rctx.ItemID)
	if !ok {
		return nil, core.NewUnknownItemError(rctx.ItemID)
	}
	return scoreAll(rctx.Index, q, "item"), nil
}

// Profile 是"基于历史"召回：查询向量为 liked ∪ watched 文档向量的均值。
// 目录范围外的 ID 被静默忽略；没有可用 ID 时返回 core.ErrEmptyInteraction。
type Profile struct{}

func (r *Profile) Name() string        { return "recall.profile" }
func (r *Profile) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Profile) Process(ctx context.Context, rctx *core.RecommendContext, _ []*core.Item) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Profile) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Index == nil {
		return nil, core.ErrInvalidInput
	}
	var vs []vector.Sparse
	for _, id := range rctx.Interactions.Interacted() {
		if v, ok := rctx.Index.DocVector(id); ok {
			vs = append(vs, v)
		}
	}
	profile, err := feature.AggregateProfile(vs)
	if err != nil {
		return nil, err
	}
	return scoreAll(rctx.Index, profile, "profile"), nil
}

// Query 是自由文本搜索召回：查询向量为 Transform(rctx.Query)。
type Query struct{}

func (r *Query) Name() string        { return "recall.query" }
func (r *Query) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Query) Process(ctx context.Context, rctx *core.RecommendContext, _ []*core.Item) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Query) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Index == nil {
		return nil, core.ErrInvalidInput
	}
	return scoreAll(rctx.Index, rctx.Index.Transform(rctx.Query), "query"), nil
}

func scoreAll(idx core.ContentIndex, q vector.Sparse, source string) []*core.Item {
	n := idx.Len()
	docs := make([]vector.Sparse, n)
	for i := 0; i < n; i++ {
		docs[i], _ = idx.DocVector(int64(i))
	}
	scores := vector.Similarity(q, docs)

	out := make([]*core.Item, n)
	for i, s := range scores {
		it := core.NewItem(int64(i))
		it.Score = s
		if talk, ok := idx.Talk(int64(i)); ok {
			it.Meta["title"] = talk.Title
			it.Meta["url"] = talk.URL
			it.Meta["tags"] = talk.Tags
		}
		it.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
		out[i] = it
	}
	return out
}

var (
	_ Source = (*ItemSimilarity)(nil)
	_ Source = (*Profile)(nil)
	_ Source = (*Query)(nil)
)
