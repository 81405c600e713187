package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tedflare/core"
	"github.com/rushteam/tedflare/pipeline"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("debug: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "users", cfg.Store.KeyPrefix)
	assert.Equal(t, 5, cfg.Recommend.TopK)
	assert.Equal(t, 2, cfg.Recommend.MinTokenLength)

	var rc core.RecommendConfig = cfg
	assert.Equal(t, 5, rc.DefaultTopK())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("store:\n  backend: etcd\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("store: [\n"))
	assert.Error(t, err)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tedflare.yaml")
	data := "catalog:\n  path: talks.csv\nrecommend:\n  top_k: 8\n  extra_stop_words: [tedx]\npipelines:\n  search: /etc/search.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "talks.csv"), cfg.Catalog.Path)
	assert.Equal(t, "/etc/search.yaml", cfg.Pipelines.Search)
	assert.Equal(t, "", cfg.Pipelines.Similar)
	assert.Equal(t, 8, cfg.Recommend.TopK)
	assert.Equal(t, []string{"tedx"}, cfg.Recommend.ExtraStopWords)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	Register("test.noop", func(map[string]interface{}) (pipeline.Node, error) { return nil, nil })
	assert.Contains(t, SupportedTypes(), "test.noop")

	cfg, err := pipeline.ParseYAML([]byte("pipeline:\n  name: x\n  nodes:\n    - type: test.noop\n"))
	require.NoError(t, err)
	assert.NoError(t, ValidatePipelineConfig(cfg))

	cfg, err = pipeline.ParseYAML([]byte("pipeline:\n  name: x\n  nodes:\n    - type: test.unknown\n"))
	require.NoError(t, err)
	assert.ErrorContains(t, ValidatePipelineConfig(cfg), "test.unknown")

	cfg, err = pipeline.ParseYAML([]byte("pipeline:\n  name: empty\n"))
	require.NoError(t, err)
	assert.Error(t, ValidatePipelineConfig(cfg))
}
