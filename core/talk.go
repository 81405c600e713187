package core

// Talk 是目录中的一条演讲。ID 为加载时分配的稠密下标（从 0 开始），加载后不可变。
type Talk struct {
	ID    int64
	Title string
	URL   string
	Tags  string // 原始标签文本，可能为空
}

// Recommendation 是三个推荐入口的统一输出。
type Recommendation struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}
