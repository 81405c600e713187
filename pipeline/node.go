package pipeline

import (
	"context"

	"github.com/rushteam/tedflare/core"
)

// Kind 标记 Node 所处阶段。Engine 依据它把排除过滤器插到第一个 rank/rerank 节点之前。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindRank        Kind = "rank"        // 排序阶段：对候选打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：在排序结果上做多样性/业务调优
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充特征或最终结果修饰
)

// Node 是 Pipeline 的一个阶段：输入候选演讲，输出处理后的候选。
// 召回节点忽略输入并对整个目录打分；其余节点只做剔除、排序或截断。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
