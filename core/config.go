package core

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultTopK 返回默认的推荐条数
	DefaultTopK() int

	// DefaultMinTokenLength 返回分词时保留的最短词长
	DefaultMinTokenLength() int
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopK() int {
	return 5
}

func (c *DefaultRecommendConfig) DefaultMinTokenLength() int {
	return 2
}
