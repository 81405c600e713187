package core

import (
	"sort"
	"strconv"
	"strings"
)

// InteractionSet 是外部存储提供的用户交互集合，按 liked / watched / saved 划分。
// 推荐核心只读取，不修改。
type InteractionSet struct {
	Liked   map[int64]struct{}
	Watched map[int64]struct{}
	Saved   map[int64]struct{}
}

// NewInteractionSet 由三组 ID 构建交互集合（重复 ID 自动去重）。
func NewInteractionSet(liked, watched, saved []int64) *InteractionSet {
	return &InteractionSet{
		Liked:   toSet(liked),
		Watched: toSet(watched),
		Saved:   toSet(saved),
	}
}

// Interacted 返回 liked ∪ watched（升序），用于构建画像向量。
func (s *InteractionSet) Interacted() []int64 {
	if s == nil {
		return nil
	}
	return union(s.Liked, s.Watched)
}

// Seen 返回 liked ∪ watched ∪ saved（升序），用于排除已看过的物品。
func (s *InteractionSet) Seen() []int64 {
	if s == nil {
		return nil
	}
	return union(s.Liked, s.Watched, s.Saved)
}

// Empty 判断三组集合是否都为空。
func (s *InteractionSet) Empty() bool {
	return s == nil || len(s.Liked)+len(s.Watched)+len(s.Saved) == 0
}

// ParseInteractionIDs 解析外部存储中的字符串 ID。
// 非数字与负数 ID 被静默丢弃，保证部分损坏的数据不会导致整个请求失败。
func ParseInteractionIDs(raw []string) []int64 {
	out := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil || id < 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

// SortedIDs 返回集合中的 ID（升序）。
func SortedIDs(set map[int64]struct{}) []int64 {
	return union(set)
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func union(sets ...map[int64]struct{}) []int64 {
	seen := make(map[int64]struct{})
	for _, set := range sets {
		for id := range set {
			seen[id] = struct{}{}
		}
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
