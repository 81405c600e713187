// Package engine 是内容推荐的入口：相似演讲、基于历史、自由文本搜索。
//
// 目录在启动时拟合一次并以 Snapshot 发布；刷新时整体重建后原子替换，
// 进行中的请求继续使用它们开始时捕获的版本。
package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/rushteam/tedflare/catalog"
	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/feature"
	"github.com/rushteam/tedflare/filter"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/rank"
	"github.com/rushteam/tedflare/recall"
	"github.com/rushteam/tedflare/rerank"
)

// Mode 是推荐模式。
type Mode string

const (
	ModeSimilar Mode = "similar" // 相似演讲
	ModeProfile Mode = "profile" // 基于用户历史
	ModeSearch  Mode = "search"  // 自由文本搜索
)

// Modes 返回全部推荐模式。
func Modes() []Mode { return []Mode{ModeSimilar, ModeProfile, ModeSearch} }

// InteractionReader 读取用户交互集合（外部存储，只读）。
type InteractionReader interface {
	Get(ctx context.Context, userID string) (*core.InteractionSet, error)
}

// Engine 持有当前发布的 Snapshot 与各模式的 Pipeline。可并发使用。
type Engine struct {
	snap    atomic.Pointer[Snapshot]
	version atomic.Uint64

	vectorizer   *feature.Vectorizer
	topK         int
	logger       *zap.Logger
	reader       InteractionReader
	pipelines    map[Mode]*pipeline.Pipeline
	extraFilters []filter.Filter
}

// New 在目录上拟合并发布第一个 Snapshot。空目录返回 core.ErrEmptyCatalog，启动应中止。
func New(c *catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		vectorizer: feature.NewVectorizer(),
		topK:       (&core.DefaultRecommendConfig{}).DefaultTopK(),
		logger:     zap.NewNop(),
		pipelines:  make(map[Mode]*pipeline.Pipeline),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, mode := range Modes() {
		if custom, ok := e.pipelines[mode]; ok {
			e.pipelines[mode] = e.guardPipeline(custom)
		} else {
			e.pipelines[mode] = e.defaultPipeline(mode)
		}
	}
	if err := e.Refresh(c); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) defaultPipeline(mode Mode) *pipeline.Pipeline {
	var src pipeline.Node
	switch mode {
	case ModeSimilar:
		src = &recall.ItemSimilarity{}
	case ModeProfile:
		src = &recall.Profile{}
	default:
		src = &recall.Query{}
	}
	filters := append([]filter.Filter{&filter.ExcludeFilter{}}, e.extraFilters...)
	return &pipeline.Pipeline{Nodes: []pipeline.Node{
		src,
		&filter.FilterNode{Filters: filters, Logger: e.logger},
		&rank.ScoreNode{},
		&rerank.TopNNode{N: e.topK},
	}}
}

// guardPipeline 在自定义 Pipeline 的第一个排序/截断节点之前插入排除过滤器与额外过滤器，
// 保证截断前已剔除排除集合。返回新的 Pipeline，调用方传入的不会被修改。
func (e *Engine) guardPipeline(p *pipeline.Pipeline) *pipeline.Pipeline {
	filters := append([]filter.Filter{&filter.ExcludeFilter{}}, e.extraFilters...)
	fn := &filter.FilterNode{Filters: filters, Logger: e.logger}
	pos := len(p.Nodes)
	for i, n := range p.Nodes {
		if k := n.Kind(); k == pipeline.KindRank || k == pipeline.KindReRank {
			pos = i
			break
		}
	}
	nodes := make([]pipeline.Node, 0, len(p.Nodes)+1)
	nodes = append(nodes, p.Nodes[:pos]...)
	nodes = append(nodes, fn)
	nodes = append(nodes, p.Nodes[pos:]...)
	return &pipeline.Pipeline{Nodes: nodes}
}

// Refresh 在新目录上整体重建 Snapshot 并原子替换；失败时保留旧版本。
func (e *Engine) Refresh(c *catalog.Catalog) error {
	snap, err := BuildSnapshot(c, e.vectorizer)
	if err != nil {
		return err
	}
	snap.Version = e.version.Add(1)
	e.snap.Store(snap)
	e.logger.Info("content snapshot published",
		zap.Uint64("version", snap.Version),
		zap.Int("talks", snap.Len()),
		zap.Int("vocabulary", snap.VocabularySize()),
	)
	return nil
}

// Snapshot 返回当前发布的 Snapshot。
func (e *Engine) Snapshot() *Snapshot { return e.snap.Load() }

// Pipeline 返回某个模式使用的 Pipeline。
func (e *Engine) Pipeline(mode Mode) *pipeline.Pipeline { return e.pipelines[mode] }

// RecommendSimilarTo 推荐与 itemID 相似的演讲（排除自身）。k <= 0 时使用默认条数。
func (e *Engine) RecommendSimilarTo(ctx context.Context, itemID int64, k int) ([]core.Recommendation, error) {
	snap := e.snap.Load()
	if _, ok := snap.Talk(itemID); !ok {
		return nil, core.NewUnknownItemError(itemID)
	}
	rctx := e.newContext(snap, ModeSimilar, k)
	rctx.ItemID = itemID
	rctx.ExcludeIDs(itemID)
	return e.run(ctx, ModeSimilar, rctx)
}

// RecommendForProfile 以 interacted 的文档向量均值为画像推荐，剔除 exclude。
// 目录外的 ID 被忽略；没有有效 ID 时返回 core.ErrEmptyInteraction。
func (e *Engine) RecommendForProfile(ctx context.Context, interacted, exclude []int64, k int) ([]core.Recommendation, error) {
	snap := e.snap.Load()
	rctx := e.newContext(snap, ModeProfile, k)
	rctx.Interactions = core.NewInteractionSet(interacted, nil, nil)
	rctx.ExcludeIDs(exclude...)
	return e.run(ctx, ModeProfile, rctx)
}

// RecommendForUser 读取用户交互集合：liked ∪ watched 构建画像，liked ∪ watched ∪ saved 排除。
func (e *Engine) RecommendForUser(ctx context.Context, userID string, k int) ([]core.Recommendation, error) {
	if e.reader == nil {
		return nil, fmt.Errorf("%w: no interaction reader configured", core.ErrStoreNotSupported)
	}
	set, err := e.reader.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := e.snap.Load()
	rctx := e.newContext(snap, ModeProfile, k)
	rctx.UserID = userID
	rctx.Interactions = set
	rctx.ExcludeIDs(set.Seen()...)
	return e.run(ctx, ModeProfile, rctx)
}

// Search 按自由文本检索演讲。
func (e *Engine) Search(ctx context.Context, text string, k int) ([]core.Recommendation, error) {
	snap := e.snap.Load()
	rctx := e.newContext(snap, ModeSearch, k)
	rctx.Query = text
	return e.run(ctx, ModeSearch, rctx)
}

func (e *Engine) newContext(snap *Snapshot, mode Mode, k int) *core.RecommendContext {
	if k <= 0 {
		k = e.topK
	}
	return &core.RecommendContext{
		Scene: string(mode),
		TopK:  k,
		Index: snap,
	}
}

func (e *Engine) run(ctx context.Context, mode Mode, rctx *core.RecommendContext) ([]core.Recommendation, error) {
	items, err := e.pipelines[mode].Run(ctx, rctx, nil)
	if err != nil {
		e.logger.Debug("recommendation failed",
			zap.String("mode", string(mode)),
			zap.String("user_id", rctx.UserID),
			zap.Int64("item_id", rctx.ItemID),
			zap.Error(err),
		)
		return nil, err
	}

	// 排除与截断由 rank.Rank 统一收口：自定义 Pipeline 缺少 exclude 过滤器时也不会返回已排除的物品。
	scored := make([]rank.Scored, 0, len(items))
	byID := make(map[int64]float64, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, dup := byID[it.ID]; dup {
			continue
		}
		byID[it.ID] = it.Score
		scored = append(scored, rank.Scored{ID: it.ID, Score: it.Score})
	}

	ids := rank.Rank(scored, rctx.Exclude, rctx.TopK)
	out := make([]core.Recommendation, 0, len(ids))
	for _, id := range ids {
		talk, ok := rctx.Index.Talk(id)
		if !ok {
			continue
		}
		out = append(out, core.Recommendation{
			ID:    talk.ID,
			Title: talk.Title,
			URL:   talk.URL,
			Score: byID[id],
		})
	}
	return out, nil
}
