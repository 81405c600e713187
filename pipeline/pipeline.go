package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/tedflare/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：召回 → 过滤 → 排序 → 截断。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行各个 Node；任一 Node 失败即中止。
// 领域错误（如 UNKNOWN_ITEM）原样返回，其余错误附带 Node 名称。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			if core.IsDomainError(err) {
				return nil, err
			}
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// Names 返回各 Node 名称，便于日志与排查。
func (p *Pipeline) Names() []string {
	out := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		out = append(out, n.Name())
	}
	return out
}
