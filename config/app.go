package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// App 是 tedflare 的应用配置（YAML）。
type App struct {
	Debug     bool            `yaml:"debug"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Recommend RecommendConfig `yaml:"recommend"`
	Pipelines PipelinesConfig `yaml:"pipelines"`
}

// CatalogConfig 描述目录 CSV 的位置。
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig 描述用户交互存储。
type StoreConfig struct {
	Backend   string `yaml:"backend"` // memory / redis
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// RecommendConfig 是推荐默认参数与分词设置。
type RecommendConfig struct {
	TopK           int      `yaml:"top_k"`
	MinTokenLength int      `yaml:"min_token_length"`
	ExtraStopWords []string `yaml:"extra_stop_words"`
	BlacklistKey   string   `yaml:"blacklist_key"` // Store 中下架演讲 ID 列表的 key，可选
}

// PipelinesConfig 为各推荐模式指定可选的 Pipeline YAML；为空时使用内置 Pipeline。
type PipelinesConfig struct {
	Similar string `yaml:"similar"`
	Profile string `yaml:"profile"`
	Search  string `yaml:"search"`
}

// DefaultTopK 实现 core.RecommendConfig。
func (c *App) DefaultTopK() int { return c.Recommend.TopK }

// DefaultMinTokenLength 实现 core.RecommendConfig。
func (c *App) DefaultMinTokenLength() int { return c.Recommend.MinTokenLength }

// Load 读取并解析配置文件，补齐默认值；相对路径相对于配置文件所在目录。
func Load(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	cfg.Catalog.Path = resolvePath(cfg.Catalog.Path, dir)
	cfg.Pipelines.Similar = resolvePath(cfg.Pipelines.Similar, dir)
	cfg.Pipelines.Profile = resolvePath(cfg.Pipelines.Profile, dir)
	cfg.Pipelines.Search = resolvePath(cfg.Pipelines.Search, dir)
	return cfg, nil
}

// Parse 解析内存中的 YAML 并补齐默认值。
func Parse(data []byte) (*App, error) {
	var cfg App
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回全部使用默认值的配置。
func Default() *App {
	cfg := &App{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults 为未设置的字段填充默认值。
func ApplyDefaults(cfg *App) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "ted_talks.csv"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.Addr == "" {
		cfg.Store.Addr = "localhost:6379"
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "users"
	}
	if cfg.Recommend.TopK <= 0 {
		cfg.Recommend.TopK = 5
	}
	if cfg.Recommend.MinTokenLength <= 0 {
		cfg.Recommend.MinTokenLength = 2
	}
}

// Validate 校验取值范围。
func (c *App) Validate() error {
	switch c.Store.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported store backend %q (supported: memory, redis)", c.Store.Backend)
	}
	if c.Store.DB < 0 {
		return fmt.Errorf("store db must be >= 0, got %d", c.Store.DB)
	}
	return nil
}

func resolvePath(path, dir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
