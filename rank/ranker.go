// Package rank 实现候选排序：分数降序，同分按 ID 升序，保证输出可复现。
package rank

import "sort"

// Scored 是一个带分数的候选。
type Scored struct {
	ID    int64
	Score float64
}

// Less 定义排序顺序：分数高者在前，同分 ID 小者在前。
func Less(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}

// Rank 先剔除 exclude 中的 ID，再排序并截取前 k 个。
// 候选不足时返回少于 k 个；k <= 0 返回空结果。从不失败。
func Rank(scores []Scored, exclude map[int64]struct{}, k int) []int64 {
	if k <= 0 {
		return []int64{}
	}
	kept := make([]Scored, 0, len(scores))
	for _, s := range scores {
		if _, ok := exclude[s.ID]; ok {
			continue
		}
		kept = append(kept, s)
	}
	sort.Slice(kept, func(i, j int) bool { return Less(kept[i], kept[j]) })
	if len(kept) > k {
		kept = kept[:k]
	}
	out := make([]int64, len(kept))
	for i, s := range kept {
		out[i] = s.ID
	}
	return out
}
