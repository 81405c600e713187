// Package tedflare 是一个基于内容的演讲推荐引擎。
//
// 设计要点：
// - 目录启动时加载一次，TF-IDF 词表与文档向量拟合后以只读快照发布，刷新时整体原子替换
// - Pipeline-first: 三种推荐模式都由 Node 串联（Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传，便于解释推荐来源与过滤原因
package tedflare

import "github.com/rushteam/tedflare/pipeline"

// 轻量 facade：便于用户直接 import "tedflare" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
