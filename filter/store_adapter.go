package filter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/tedflare/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 从 Store 读取黑名单。
// 值为 JSON 数组，元素可以是数字或字符串形式的 ID；无法解析的 ID 被丢弃。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]int64, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err == nil {
		return ids, nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("blacklist %s: %w", key, err)
	}
	return core.ParseInteractionIDs(raw), nil
}
