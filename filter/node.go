package filter

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该物品就会被过滤掉。
// 过滤发生在截断之前，保证 TopN 取到的都是新物品。
type FilterNode struct {
	Filters []Filter

	// Logger 记录过滤器错误；为 nil 时不记录
	Logger *zap.Logger
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	filteredCount := 0

	for _, item := range items {
		if item == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				if n.Logger != nil {
					n.Logger.Debug("filter failed",
						zap.String("filter", f.Name()),
						zap.Int64("item_id", item.ID),
						zap.Error(err),
					)
				}
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			filteredCount++
			item.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, item)
	}

	if rctx != nil && filteredCount > 0 {
		rctx.PutLabel("filtered_count", utils.Label{Value: strconv.Itoa(filteredCount), Source: n.Name()})
	}
	return out, nil
}
