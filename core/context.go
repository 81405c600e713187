package core

import (
	"github.com/rushteam/tedflare/pkg/utils"
	"github.com/rushteam/tedflare/vector"
)

// ContentIndex 是一次发布的内容快照的只读视图（目录 + 词表 + 文档向量）。
// 请求开始时捕获一次，整个 Pipeline 都基于同一个版本计算。
type ContentIndex interface {
	// Len 返回目录中的物品数量
	Len() int

	// Talk 按 ID 获取物品元信息
	Talk(id int64) (Talk, bool)

	// DocVector 按 ID 获取已拟合的文档向量
	DocVector(id int64) (vector.Sparse, bool)

	// Transform 将任意文本投影到固定词表上
	Transform(text string) vector.Sparse
}

// RecommendContext 承载用户/场景/请求参数，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string // similar / profile / search

	// ItemID 是"相似推荐"模式的种子物品
	ItemID int64

	// Query 是"自由文本搜索"模式的查询文本
	Query string

	// Interactions 是"画像推荐"模式的用户交互集合
	Interactions *InteractionSet

	// Exclude 是需要在截断前剔除的物品 ID
	Exclude map[int64]struct{}

	// TopK 请求级返回条数；<= 0 时由节点使用默认值
	TopK int

	// Index 是本次请求捕获的内容快照
	Index ContentIndex

	// Labels 是请求级标签
	Labels map[string]utils.Label

	// Params 请求级扩展参数
	Params map[string]any
}

// ExcludeIDs 设置排除集合。
func (rctx *RecommendContext) ExcludeIDs(ids ...int64) {
	if rctx.Exclude == nil {
		rctx.Exclude = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		rctx.Exclude[id] = struct{}{}
	}
}

// IsExcluded 判断物品是否在排除集合中。
func (rctx *RecommendContext) IsExcluded(id int64) bool {
	if rctx == nil || rctx.Exclude == nil {
		return false
	}
	_, ok := rctx.Exclude[id]
	return ok
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
