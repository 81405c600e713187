package filter

import (
	"context"

	"github.com/rushteam/tedflare/core"
)

// ExcludeFilter 剔除请求上下文中 Exclude 集合里的物品（种子物品、用户已交互物品等）。
type ExcludeFilter struct{}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return rctx.IsExcluded(item.ID), nil
}
