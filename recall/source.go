package recall

import (
	"context"

	"github.com/rushteam/tedflare/core"
)

// Source 表示一个可复用的召回源（相似演讲 / 用户画像 / 文本查询）。
// 召回源同时实现 pipeline.Node，可以直接放进 Pipeline。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
