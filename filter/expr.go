package filter

import (
	"context"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤，表达式为 true 的物品被移除。
// 例如 `item.score < 0.01` 或 `item.meta.tags.contains("live music")`。
type ExprFilter struct {
	expr *dsl.Expr
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	compiled, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{expr: compiled}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.expr == nil {
		return false, nil
	}
	return f.expr.Evaluate(item, rctx)
}
