// Package vector 提供稀疏向量及相似度计算（余弦、均值），是推荐打分的数学底座。
package vector

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmpty 表示对空向量集合求均值。
	ErrEmpty = errors.New("vector: empty input")

	// ErrDimMismatch 表示向量维度不一致。
	ErrDimMismatch = errors.New("vector: dimension mismatch")
)

// Sparse 是稀疏向量：Indices 严格递增，Values 与之一一对应。
// Dim 为逻辑维度（即词表大小）；全零向量合法（Indices 为空）。
type Sparse struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Zero 返回指定维度的零向量。
func Zero(dim int) Sparse {
	return Sparse{Dim: dim}
}

// FromMap 由 index -> value 构建稀疏向量，零值条目被丢弃。
func FromMap(dim int, m map[int]float64) Sparse {
	idx := make([]int, 0, len(m))
	for i, v := range m {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = m[i]
	}
	return Sparse{Dim: dim, Indices: idx, Values: vals}
}

// NNZ 返回非零元素个数。
func (v Sparse) NNZ() int { return len(v.Indices) }

// IsZero 判断是否为零向量。
func (v Sparse) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Get 返回第 i 维的值。
func (v Sparse) Get(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Dense 展开为稠密切片（仅用于调试与测试）。
func (v Sparse) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Norm 返回 L2 范数。
func (v Sparse) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize 返回 L2 归一化后的副本；零向量原样返回。
func (v Sparse) Normalize() Sparse {
	n := v.Norm()
	if n == 0 {
		return v
	}
	vals := make([]float64, len(v.Values))
	for k, x := range v.Values {
		vals[k] = x / n
	}
	return Sparse{Dim: v.Dim, Indices: v.Indices, Values: vals}
}

// Dot 计算点积（按 Indices 归并）。
func Dot(a, b Sparse) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Cosine 计算余弦相似度；任一向量为零向量时定义为 0。
func Cosine(a, b Sparse) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Similarity 计算 a 与 B 中每个向量的余弦相似度，输出位置与 B 一一对应。
// a 只展开一次，整体代价为 O(nnz(a) + nnz(B))。
func Similarity(a Sparse, bs []Sparse) []float64 {
	out := make([]float64, len(bs))
	na := a.Norm()
	if na == 0 {
		return out
	}
	lookup := make(map[int]float64, len(a.Indices))
	for k, i := range a.Indices {
		lookup[i] = a.Values[k]
	}
	for n, b := range bs {
		var dot, sq float64
		for k, i := range b.Indices {
			x := b.Values[k]
			sq += x * x
			if y, ok := lookup[i]; ok {
				dot += x * y
			}
		}
		if sq == 0 {
			continue
		}
		out[n] = dot / (na * math.Sqrt(sq))
	}
	return out
}

// Mean 计算逐元素算术平均，不再重新归一化。
func Mean(vs []Sparse) (Sparse, error) {
	if len(vs) == 0 {
		return Sparse{}, ErrEmpty
	}
	dim := vs[0].Dim
	sum := make(map[int]float64)
	for _, v := range vs {
		if v.Dim != dim {
			return Sparse{}, ErrDimMismatch
		}
		for k, i := range v.Indices {
			sum[i] += v.Values[k]
		}
	}
	n := float64(len(vs))
	for i := range sum {
		sum[i] /= n
	}
	return FromMap(dim, sum), nil
}
