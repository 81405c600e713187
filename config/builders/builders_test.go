package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tedflare/config"
	"github.com/rushteam/tedflare/filter"
	"github.com/rushteam/tedflare/pipeline"
	"github.com/rushteam/tedflare/rerank"
)

const searchPipeline = `
pipeline:
  name: search
  nodes:
    - type: recall.query
    - type: filter
      config:
        filters:
          - type: exclude
          - type: blacklist
            item_ids: [3, "7"]
          - type: expr
            expr: 'item.score <= 0.0'
    - type: rank.score
    - type: rerank.topn
      config:
        n: 10
`

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(searchPipeline))
	require.NoError(t, err)
	require.NoError(t, config.ValidatePipelineConfig(cfg))

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	require.NoError(t, err)
	assert.Equal(t, []string{"recall.query", "filter.node", "rank.score", "rerank.topn"}, p.Names())

	fn, ok := p.Nodes[1].(*filter.FilterNode)
	require.True(t, ok)
	require.Len(t, fn.Filters, 3)
	bl, ok := fn.Filters[1].(*filter.BlacklistFilter)
	require.True(t, ok)
	assert.Contains(t, bl.ItemIDs, int64(3))
	assert.Contains(t, bl.ItemIDs, int64(7))

	assert.Equal(t, 10, p.Nodes[3].(*rerank.TopNNode).N)
}

func TestBuildFilterNode_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]interface{}
	}{
		{name: "missing filters", cfg: map[string]interface{}{}},
		{name: "unknown type", cfg: map[string]interface{}{"filters": []interface{}{map[string]interface{}{"type": "bloom"}}}},
		{name: "empty expr", cfg: map[string]interface{}{"filters": []interface{}{map[string]interface{}{"type": "expr"}}}},
		{name: "blacklist key without store", cfg: map[string]interface{}{"filters": []interface{}{map[string]interface{}{"type": "blacklist", "key": "blacklist:talks"}}}},
		{name: "bad expr", cfg: map[string]interface{}{"filters": []interface{}{map[string]interface{}{"type": "expr", "expr": "item.score >"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilterNode(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestBuildTopNNode_Negative(t *testing.T) {
	_, err := BuildTopNNode(map[string]interface{}{"n": -1})
	assert.Error(t, err)
}

func loadShippedPipeline(path string) (*pipeline.Pipeline, error) {
	pc, err := pipeline.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.ValidatePipelineConfig(pc); err != nil {
		return nil, err
	}
	return pc.BuildPipeline(config.DefaultFactory())
}
