package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rushteam/tedflare/pkg/utils"
)

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("request: %w", NewUnknownItemError(12))
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.True(t, IsUnknownItem(err))
	assert.False(t, IsEmptyInteraction(err))
	assert.Contains(t, err.Error(), "12")

	assert.False(t, errors.Is(ErrEmptyCatalog, ErrUnknownItem))
	assert.True(t, IsDomainError(err))
	assert.Nil(t, GetDomainError(errors.New("plain")))
	assert.True(t, IsStoreNotFound(fmt.Errorf("x: %w", ErrStoreNotFound)))
}

func TestInteractionSet(t *testing.T) {
	s := NewInteractionSet([]int64{3, 1, 3}, []int64{2, 1}, []int64{9})
	assert.Equal(t, []int64{1, 2, 3}, s.Interacted())
	assert.Equal(t, []int64{1, 2, 3, 9}, s.Seen())
	assert.False(t, s.Empty())
	assert.Equal(t, []int64{9}, SortedIDs(s.Saved))

	var nilSet *InteractionSet
	assert.Nil(t, nilSet.Interacted())
	assert.Nil(t, nilSet.Seen())
	assert.True(t, nilSet.Empty())
}

func TestParseInteractionIDs(t *testing.T) {
	got := ParseInteractionIDs([]string{"4", " 5 ", "x", "-1", "", "3.5", "12"})
	assert.Equal(t, []int64{4, 5, 12}, got)
}

func TestRecommendContext(t *testing.T) {
	var nilCtx *RecommendContext
	assert.False(t, nilCtx.IsExcluded(1))

	rctx := &RecommendContext{}
	assert.False(t, rctx.IsExcluded(1))
	rctx.ExcludeIDs(1, 2)
	assert.True(t, rctx.IsExcluded(2))
	assert.False(t, rctx.IsExcluded(3))

	rctx.PutLabel("k", utils.Label{Value: "a", Source: "x"})
	rctx.PutLabel("k", utils.Label{Value: "b", Source: "y"})
	lbl, ok := rctx.GetLabel("k")
	assert.True(t, ok)
	assert.Equal(t, "a|b", lbl.Value)
}
