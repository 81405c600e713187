package feature

import (
	"errors"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/vector"
)

// AggregateProfile 把用户交互过的文档向量合成为画像向量（逐元素均值，不再归一化）。
// 输入为空时返回 core.ErrEmptyInteraction，调用方应提示"数据不足"。
func AggregateProfile(vs []vector.Sparse) (vector.Sparse, error) {
	profile, err := vector.Mean(vs)
	if errors.Is(err, vector.ErrEmpty) {
		return vector.Sparse{}, core.ErrEmptyInteraction
	}
	return profile, err
}
