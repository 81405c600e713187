package filter

import (
	"context"

	"github.com/rushteam/tedflare/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉下架或被屏蔽的演讲。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单
	ItemIDs map[int64]struct{}

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单物品 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]int64, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(itemIDs []int64, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	ids := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = struct{}{}
	}
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &BlacklistFilter{
		ItemIDs: ids,
		Store:   store,
		Key:     key,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if _, ok := f.ItemIDs[item.ID]; ok {
		return true, nil
	}

	if f.Store != nil && f.Key != "" {
		blocked, err := f.load(ctx, rctx)
		if err != nil {
			return false, err
		}
		_, ok := blocked[item.ID]
		return ok, nil
	}

	return false, nil
}

// blacklistEntry 是一次请求内缓存的读取结果（包括失败）。
type blacklistEntry struct {
	ids map[int64]struct{}
	err error
}

// load 每个请求只读一次 Store：结果缓存在 rctx.Params 中，后续物品直接复用。
// rctx 为 nil 时无处缓存，每次都读取。
func (f *BlacklistFilter) load(ctx context.Context, rctx *core.RecommendContext) (map[int64]struct{}, error) {
	cacheKey := f.Name() + ":" + f.Key
	if rctx != nil {
		if entry, ok := rctx.Params[cacheKey].(*blacklistEntry); ok {
			return entry.ids, entry.err
		}
	}

	entry := &blacklistEntry{}
	list, err := f.Store.GetBlacklist(ctx, f.Key)
	switch {
	case err == nil:
		entry.ids = make(map[int64]struct{}, len(list))
		for _, id := range list {
			entry.ids[id] = struct{}{}
		}
	case core.IsStoreNotFound(err):
		// key 不存在：不过滤
	default:
		entry.err = err
	}

	if rctx != nil {
		if rctx.Params == nil {
			rctx.Params = make(map[string]any)
		}
		rctx.Params[cacheKey] = entry
	}
	return entry.ids, entry.err
}
