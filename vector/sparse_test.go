package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	v := FromMap(5, map[int]float64{3: 2, 0: 1, 4: 0})
	assert.Equal(t, []int{0, 3}, v.Indices)
	assert.Equal(t, []float64{1, 2}, v.Values)
	assert.Equal(t, 2, v.NNZ())
	assert.Equal(t, 2.0, v.Get(3))
	assert.Equal(t, 0.0, v.Get(4))
	assert.Equal(t, []float64{1, 0, 0, 2, 0}, v.Dense())
}

func TestNormalize(t *testing.T) {
	v := FromMap(3, map[int]float64{0: 3, 2: 4}).Normalize()
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.InDelta(t, 0.6, v.Get(0), 1e-12)

	z := Zero(3).Normalize()
	assert.True(t, z.IsZero())
	assert.Equal(t, 0.0, z.Norm())
}

func TestCosine(t *testing.T) {
	a := FromMap(4, map[int]float64{0: 1, 1: 2})
	b := FromMap(4, map[int]float64{2: 1, 3: 5})

	tests := []struct {
		name string
		x, y Sparse
		want float64
	}{
		{name: "self", x: a, y: a, want: 1},
		{name: "scaled", x: a, y: FromMap(4, map[int]float64{0: 10, 1: 20}), want: 1},
		{name: "disjoint", x: a, y: b, want: 0},
		{name: "zero left", x: Zero(4), y: a, want: 0},
		{name: "zero right", x: a, y: Zero(4), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.x, tt.y), 1e-12)
		})
	}
}

func TestSimilarity(t *testing.T) {
	a := FromMap(4, map[int]float64{0: 1, 1: 1})
	bs := []Sparse{
		FromMap(4, map[int]float64{2: 1}),
		a,
		Zero(4),
		FromMap(4, map[int]float64{0: 1}),
	}

	got := Similarity(a, bs)
	require.Len(t, got, 4)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 1.0, got[1], 1e-12)
	assert.Equal(t, 0.0, got[2])
	assert.InDelta(t, Cosine(a, bs[3]), got[3], 1e-12)

	for i, b := range bs {
		assert.InDelta(t, Cosine(a, b), got[i], 1e-12, "position %d", i)
	}

	assert.Equal(t, []float64{0, 0}, Similarity(Zero(4), []Sparse{a, a}))
	assert.Empty(t, Similarity(a, nil))
}

func TestMean(t *testing.T) {
	t.Run("single vector is itself", func(t *testing.T) {
		v := FromMap(3, map[int]float64{0: 0.6, 2: 0.8})
		m, err := Mean([]Sparse{v})
		require.NoError(t, err)
		assert.Equal(t, v, m)
	})

	t.Run("element-wise average without renormalization", func(t *testing.T) {
		m, err := Mean([]Sparse{
			FromMap(3, map[int]float64{0: 1}),
			FromMap(3, map[int]float64{1: 1}),
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 0.5, 0}, m.Dense())
		assert.Less(t, m.Norm(), 1.0)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Mean(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Mean([]Sparse{Zero(2), Zero(3)})
		assert.ErrorIs(t, err, ErrDimMismatch)
	})
}
