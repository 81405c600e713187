package engine

import (
	"go.uber.org/zap"

	"github.com/rushteam/tedflare/feature"
	"github.com/rushteam/tedflare/filter"
	"github.com/rushteam/tedflare/pipeline"
)

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 设置日志；默认 zap.NewNop()。
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTopK 设置默认返回条数；k <= 0 时忽略。
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithTokenizer 设置拟合与查询使用的分词器。
func WithTokenizer(t *feature.Tokenizer) Option {
	return func(e *Engine) {
		if t != nil {
			e.vectorizer.Tokenizer = t
		}
	}
}

// WithInteractionReader 设置 RecommendForUser 使用的交互读取器。
func WithInteractionReader(r InteractionReader) Option {
	return func(e *Engine) { e.reader = r }
}

// WithPipeline 替换某个模式的 Pipeline。排除过滤器与 WithExtraFilters 的过滤器
// 会被插到第一个排序/截断节点之前。
func WithPipeline(mode Mode, p *pipeline.Pipeline) Option {
	return func(e *Engine) {
		if p != nil {
			e.pipelines[mode] = p
		}
	}
}

// WithExtraFilters 追加过滤器（如黑名单），对内置与自定义 Pipeline 都生效。
func WithExtraFilters(filters ...filter.Filter) Option {
	return func(e *Engine) { e.extraFilters = append(e.extraFilters, filters...) }
}
