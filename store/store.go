package store

import (
	"context"
	"fmt"

	"github.com/rushteam/tedflare/core"
)

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 和 core.KeyValueStore 接口。
//
// 示例：
//   var kvStore core.KeyValueStore = NewMemoryStore()

// Options 描述要打开的存储后端。
type Options struct {
	Backend  string // memory / redis
	Addr     string
	Password string
	DB       int
}

// Open 按 Backend 创建 KeyValueStore；空 Backend 视为 memory。
func Open(ctx context.Context, opts Options) (core.KeyValueStore, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		rs, err := NewRedisStore(ctx, opts.Addr, opts.Password, opts.DB)
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("%w: backend %q", core.ErrStoreNotSupported, opts.Backend)
	}
}
