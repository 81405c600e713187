// Package interaction 读写外部的用户交互文档（liked / watched / saved）。
//
// 每个用户一个 Hash：{prefix}:{userID}，字段 liked、watched_talks、saved_talks
// 各存一个字符串 ID 的 JSON 数组。推荐核心只通过 Get 读取；写方法供 CLI 使用。
package interaction

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rushteam/tedflare/core"
)

// Hash 字段名。
const (
	FieldLiked   = "liked"
	FieldWatched = "watched_talks"
	FieldSaved   = "saved_talks"
)

// Store 是基于 core.KeyValueStore 的交互存储。
type Store struct {
	kv     core.KeyValueStore
	prefix string
	logger *zap.Logger
}

// NewStore 创建交互存储；prefix 为空时使用 "users"，logger 为 nil 时不记录。
func NewStore(kv core.KeyValueStore, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = "users"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, prefix: prefix, logger: logger}
}

func (s *Store) key(userID string) string {
	return s.prefix + ":" + userID
}

// Get 读取用户交互集合。用户不存在时返回空集合；
// 损坏的字段按空处理，非法 ID 被静默丢弃。
func (s *Store) Get(ctx context.Context, userID string) (*core.InteractionSet, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", core.ErrInvalidInput)
	}
	fields, err := s.kv.HGetAll(ctx, s.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return core.NewInteractionSet(nil, nil, nil), nil
		}
		return nil, fmt.Errorf("read interactions of %s: %w", userID, err)
	}
	return core.NewInteractionSet(
		s.decode(userID, FieldLiked, fields[FieldLiked]),
		s.decode(userID, FieldWatched, fields[FieldWatched]),
		s.decode(userID, FieldSaved, fields[FieldSaved]),
	), nil
}

func (s *Store) decode(userID, field string, data []byte) []int64 {
	if len(data) == 0 {
		return nil
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Debug("ignore corrupt interaction field",
			zap.String("user_id", userID),
			zap.String("field", field),
			zap.Error(err),
		)
		return nil
	}
	return core.ParseInteractionIDs(raw)
}

// Like 把演讲加入 liked。
func (s *Store) Like(ctx context.Context, userID string, talkID int64) error {
	return s.update(ctx, userID, FieldLiked, talkID, true)
}

// Unlike 把演讲移出 liked。
func (s *Store) Unlike(ctx context.Context, userID string, talkID int64) error {
	return s.update(ctx, userID, FieldLiked, talkID, false)
}

// Watch 把演讲加入 watched_talks。
func (s *Store) Watch(ctx context.Context, userID string, talkID int64) error {
	return s.update(ctx, userID, FieldWatched, talkID, true)
}

// Save 把演讲加入 saved_talks。
func (s *Store) Save(ctx context.Context, userID string, talkID int64) error {
	return s.update(ctx, userID, FieldSaved, talkID, true)
}

// Unsave 把演讲移出 saved_talks。
func (s *Store) Unsave(ctx context.Context, userID string, talkID int64) error {
	return s.update(ctx, userID, FieldSaved, talkID, false)
}

// update 以集合语义增删一个 ID（读-改-写，不保证跨进程原子性）。
func (s *Store) update(ctx context.Context, userID, field string, talkID int64, add bool) error {
	if userID == "" || talkID < 0 {
		return fmt.Errorf("%w: user %q talk %d", core.ErrInvalidInput, userID, talkID)
	}
	key := s.key(userID)

	var ids []string
	data, err := s.kv.HGet(ctx, key, field)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &ids); err != nil {
			s.logger.Warn("overwrite corrupt interaction field",
				zap.String("user_id", userID),
				zap.String("field", field),
				zap.Error(err),
			)
			ids = nil
		}
	case core.IsStoreNotFound(err):
	default:
		return fmt.Errorf("read %s of %s: %w", field, userID, err)
	}

	id := strconv.FormatInt(talkID, 10)
	next := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			if !add {
				continue
			}
		}
		next = append(next, v)
	}
	if add && !found {
		next = append(next, id)
	}

	out, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.kv.HSet(ctx, key, field, out); err != nil {
		return fmt.Errorf("write %s of %s: %w", field, userID, err)
	}
	return nil
}
